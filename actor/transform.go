package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform is the renderable pose of a body: position plus unit
// quaternion rotation. It is the read-back contract for external
// renderers; no other body field is part of it.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Pose returns the current transform of the body.
func (b *Body) Pose() Transform {
	return Transform{
		Position: b.Position,
		Rotation: b.Orientation,
	}
}

// WorldMatrix returns the column-major 4×4 model matrix placing the
// body in a scene.
func (b *Body) WorldMatrix() mgl64.Mat4 {
	m := b.RotationFrame.Mat4()
	m.SetCol(3, mgl64.Vec4{b.Position.X(), b.Position.Y(), b.Position.Z(), 1})

	return m
}
