package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNonPositiveMass is returned when a body would be constructed with
// a mass that is not strictly positive. Every downstream division by
// mass and inertia inversion assumes M > 0, so this is checked once at
// construction and never again.
var ErrNonPositiveMass = errors.New("actor: body mass must be strictly positive")

// Body is the full physical state of one rigid body. Momenta are the
// integration variables; Velocity and AngularVelocity are derived from
// them after every step and must never be written independently once
// the body is bound to a solver.
type Body struct {
	// Mass, constant after construction
	Mass float64

	// Body-space inertia tensor and its inverse, constant after
	// construction
	InertiaLocal        mgl64.Mat3
	InverseInertiaLocal mgl64.Mat3
	// World-space inverse inertia. Equal to InverseInertiaLocal unless
	// the owning solver tracks world inertia, in which case it is
	// refreshed to R·I0inv·Rᵗ every step.
	InverseInertiaWorld mgl64.Mat3

	// Pose
	Position      mgl64.Vec3
	RotationFrame mgl64.Mat3 // derived from Orientation, never integrated directly
	Orientation   mgl64.Quat // unit quaternion

	// Momenta
	Momentum        mgl64.Vec3
	AngularMomentum mgl64.Vec3

	// Derived velocities: V = P/M, ω = Iinv·L
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3

	// Step-scoped force and torque accumulators. Reset and recomputed
	// on every step, never carried across steps.
	Force  mgl64.Vec3
	Torque mgl64.Vec3

	// Body-space reference points used as moment arms for applied
	// forces, immutable after construction
	referencePoints []mgl64.Vec3
}

// NewBody builds a body from a shape and a density, at the origin with
// identity orientation. Initial momenta are derived from the supplied
// velocities (P₀ = M·V₀, L₀ = I₀·ω₀) so the momentum/velocity
// consistency invariants hold before the first step.
func NewBody(shape ShapeInterface, density float64, velocity, angularVelocity mgl64.Vec3) (*Body, error) {
	mass := shape.ComputeMass(density)
	if mass <= 0 {
		return nil, ErrNonPositiveMass
	}

	inertia := shape.ComputeInertia(mass)
	inverseInertia := inertia.Inv()

	return &Body{
		Mass:                mass,
		InertiaLocal:        inertia,
		InverseInertiaLocal: inverseInertia,
		InverseInertiaWorld: inverseInertia,

		Position:      mgl64.Vec3{},
		RotationFrame: mgl64.Ident3(),
		Orientation:   mgl64.QuatIdent(),

		Momentum:        velocity.Mul(mass),
		AngularMomentum: inertia.Mul3x1(angularVelocity),

		Velocity:        velocity,
		AngularVelocity: angularVelocity,

		referencePoints: shape.ReferencePoints(),
	}, nil
}

// ReferencePointCount returns the number of body-space reference points.
func (b *Body) ReferencePointCount() int {
	return len(b.referencePoints)
}

// ReferencePoint returns the i-th body-space reference point. The index
// must be in [0, ReferencePointCount()).
func (b *Body) ReferencePoint(i int) mgl64.Vec3 {
	return b.referencePoints[i]
}

// ReferencePoints returns a copy of the body-space reference points.
func (b *Body) ReferencePoints() []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(b.referencePoints))
	copy(points, b.referencePoints)
	return points
}

// ReferencePointWorld returns the i-th reference point transformed to
// world space with the current pose.
func (b *Body) ReferencePointWorld(i int) mgl64.Vec3 {
	return b.Position.Add(b.RotationFrame.Mul3x1(b.referencePoints[i]))
}

// ComputeAABB returns the world-space axis-aligned bounding box over
// the body's reference points at the current pose. Renderers use it for
// culling; the solver itself never needs it.
func (b *Body) ComputeAABB() AABB {
	worldPoint := b.ReferencePointWorld(0)
	aabb := AABB{Min: worldPoint, Max: worldPoint}

	for i := 1; i < len(b.referencePoints); i++ {
		aabb = aabb.ExtendPoint(b.ReferencePointWorld(i))
	}

	return aabb
}
