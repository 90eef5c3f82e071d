package actor

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// NewBody Tests
// =============================================================================

func TestNewBody_Box(t *testing.T) {
	box := Box{Width: 1, Height: 1, Depth: 1}
	body, err := NewBody(box, 10.0, mgl64.Vec3{}, mgl64.Vec3{})
	if err != nil {
		t.Fatalf("NewBody returned error: %v", err)
	}

	if !almostEqual(body.Mass, 10.0, 1e-10) {
		t.Errorf("Mass = %v, want 10", body.Mass)
	}

	// Inertia tensor and its inverse are diagonal; Iinv starts equal to
	// the body-space inverse
	wantI := 10.0 / 12.0 * 2.0
	for i := 0; i < 3; i++ {
		if !almostEqual(body.InertiaLocal.At(i, i), wantI, 1e-10) {
			t.Errorf("InertiaLocal[%d,%d] = %v, want %v", i, i, body.InertiaLocal.At(i, i), wantI)
		}
		if !almostEqual(body.InverseInertiaLocal.At(i, i), 1.0/wantI, 1e-10) {
			t.Errorf("InverseInertiaLocal[%d,%d] = %v, want %v", i, i, body.InverseInertiaLocal.At(i, i), 1.0/wantI)
		}
	}
	if body.InverseInertiaWorld != body.InverseInertiaLocal {
		t.Error("InverseInertiaWorld should start equal to InverseInertiaLocal")
	}

	// Identity pose
	if !quatAlmostEqual(body.Orientation, mgl64.QuatIdent(), 1e-10) {
		t.Errorf("Orientation = %v, want identity", body.Orientation)
	}
	if !mat3AlmostEqual(body.RotationFrame, mgl64.Ident3(), 1e-10) {
		t.Errorf("RotationFrame = %v, want identity", body.RotationFrame)
	}

	if body.ReferencePointCount() != 8 {
		t.Errorf("ReferencePointCount() = %d, want 8", body.ReferencePointCount())
	}
}

func TestNewBody_InitialMomenta(t *testing.T) {
	box := Box{Width: 2, Height: 1, Depth: 1}
	v0 := mgl64.Vec3{1, -2, 3}
	omega0 := mgl64.Vec3{0.5, 0, -0.25}

	body, err := NewBody(box, 5.0, v0, omega0)
	if err != nil {
		t.Fatalf("NewBody returned error: %v", err)
	}

	// P₀ = M·V₀
	wantMomentum := v0.Mul(body.Mass)
	if !vec3AlmostEqual(body.Momentum, wantMomentum, 1e-10) {
		t.Errorf("Momentum = %v, want %v", body.Momentum, wantMomentum)
	}

	// L₀ = I₀·ω₀
	wantAngularMomentum := body.InertiaLocal.Mul3x1(omega0)
	if !vec3AlmostEqual(body.AngularMomentum, wantAngularMomentum, 1e-10) {
		t.Errorf("AngularMomentum = %v, want %v", body.AngularMomentum, wantAngularMomentum)
	}

	// Consistency: deriving velocities back from momenta reproduces the
	// supplied initial values
	if !vec3AlmostEqual(body.Momentum.Mul(1.0/body.Mass), body.Velocity, 1e-10) {
		t.Error("V != P/M at construction")
	}
	if !vec3AlmostEqual(body.InverseInertiaWorld.Mul3x1(body.AngularMomentum), body.AngularVelocity, 1e-10) {
		t.Error("ω != Iinv·L at construction")
	}
}

func TestNewBody_NonPositiveMass(t *testing.T) {
	tests := []struct {
		name    string
		shape   ShapeInterface
		density float64
	}{
		{"zero density", Box{Width: 1, Height: 1, Depth: 1}, 0.0},
		{"negative density", Box{Width: 1, Height: 1, Depth: 1}, -2.0},
		{"zero volume box", Box{Width: 0, Height: 1, Depth: 1}, 5.0},
		{"zero radius sphere", Sphere{Radius: 0}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(tt.shape, tt.density, mgl64.Vec3{}, mgl64.Vec3{})
			if !errors.Is(err, ErrNonPositiveMass) {
				t.Errorf("err = %v, want ErrNonPositiveMass", err)
			}
		})
	}
}

func TestNewBody_Sphere(t *testing.T) {
	sphere := Sphere{Radius: 1.0}
	body, err := NewBody(sphere, 2.0, mgl64.Vec3{}, mgl64.Vec3{})
	if err != nil {
		t.Fatalf("NewBody returned error: %v", err)
	}

	wantMass := 2.0 * (4.0 / 3.0) * math.Pi
	if !almostEqual(body.Mass, wantMass, 1e-10) {
		t.Errorf("Mass = %v, want %v", body.Mass, wantMass)
	}
	if body.ReferencePointCount() != 6 {
		t.Errorf("ReferencePointCount() = %d, want 6", body.ReferencePointCount())
	}
}

// =============================================================================
// Reference Point Tests
// =============================================================================

func TestBody_ReferencePoints_Copy(t *testing.T) {
	box := Box{Width: 2, Height: 2, Depth: 2}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})

	points := body.ReferencePoints()
	points[0] = mgl64.Vec3{99, 99, 99}

	if vec3AlmostEqual(body.ReferencePoint(0), mgl64.Vec3{99, 99, 99}, 1e-10) {
		t.Error("mutating the returned slice changed the body's reference points")
	}
}

func TestBody_ReferencePointWorld(t *testing.T) {
	box := Box{Width: 2, Height: 2, Depth: 2}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})

	// Identity pose: world point equals body-space point
	if !vec3AlmostEqual(body.ReferencePointWorld(0), body.ReferencePoint(0), 1e-10) {
		t.Errorf("ReferencePointWorld(0) = %v, want %v", body.ReferencePointWorld(0), body.ReferencePoint(0))
	}

	// Translate and rotate a quarter turn about Z
	body.Position = mgl64.Vec3{10, 0, 0}
	body.Orientation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	body.RotationFrame = RotationFrame(body.Orientation)

	// Corner (-1,-1,-1) rotates to (1,-1,-1), then translates
	want := mgl64.Vec3{11, -1, -1}
	if !vec3AlmostEqual(body.ReferencePointWorld(0), want, 1e-9) {
		t.Errorf("ReferencePointWorld(0) = %v, want %v", body.ReferencePointWorld(0), want)
	}
}

// =============================================================================
// Read-back Tests (Pose, WorldMatrix, AABB)
// =============================================================================

func TestBody_Pose(t *testing.T) {
	box := Box{Width: 1, Height: 1, Depth: 1}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})

	body.Position = mgl64.Vec3{1, 2, 3}
	body.Orientation = mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0})

	pose := body.Pose()
	if !vec3AlmostEqual(pose.Position, body.Position, 1e-10) {
		t.Errorf("Pose().Position = %v, want %v", pose.Position, body.Position)
	}
	if !quatAlmostEqual(pose.Rotation, body.Orientation, 1e-10) {
		t.Errorf("Pose().Rotation = %v, want %v", pose.Rotation, body.Orientation)
	}
}

func TestBody_WorldMatrix(t *testing.T) {
	box := Box{Width: 1, Height: 1, Depth: 1}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})

	body.Position = mgl64.Vec3{4, 5, 6}
	body.Orientation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	body.RotationFrame = RotationFrame(body.Orientation)

	m := body.WorldMatrix()

	// Transforming the body-space origin lands on the position
	origin := m.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if !vec3AlmostEqual(origin.Vec3(), body.Position, 1e-9) {
		t.Errorf("m·origin = %v, want %v", origin.Vec3(), body.Position)
	}

	// Transforming x̂ matches R·x̂ + X
	xAxis := m.Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	want := body.RotationFrame.Mul3x1(mgl64.Vec3{1, 0, 0}).Add(body.Position)
	if !vec3AlmostEqual(xAxis.Vec3(), want, 1e-9) {
		t.Errorf("m·x̂ = %v, want %v", xAxis.Vec3(), want)
	}
}

func TestBody_ComputeAABB(t *testing.T) {
	box := Box{Width: 2, Height: 4, Depth: 6}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})
	body.Position = mgl64.Vec3{1, 1, 1}

	aabb := body.ComputeAABB()

	wantMin := mgl64.Vec3{0, -1, -2}
	wantMax := mgl64.Vec3{2, 3, 4}
	if !vec3AlmostEqual(aabb.Min, wantMin, 1e-10) {
		t.Errorf("AABB.Min = %v, want %v", aabb.Min, wantMin)
	}
	if !vec3AlmostEqual(aabb.Max, wantMax, 1e-10) {
		t.Errorf("AABB.Max = %v, want %v", aabb.Max, wantMax)
	}
}

func TestBody_ComputeAABB_Rotated(t *testing.T) {
	box := Box{Width: 2, Height: 2, Depth: 2}
	body, _ := NewBody(box, 1.0, mgl64.Vec3{}, mgl64.Vec3{})

	// A quarter turn about the diagonal keeps the corners at distance
	// √3 from the center, so the AABB must still contain them all
	body.Orientation = mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 1, 1}.Normalize())
	body.RotationFrame = RotationFrame(body.Orientation)

	aabb := body.ComputeAABB()
	for i := 0; i < body.ReferencePointCount(); i++ {
		if !aabb.ContainsPoint(body.ReferencePointWorld(i)) {
			t.Errorf("AABB does not contain world corner %d", i)
		}
	}
}

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// Helper function to compare Vec3 with epsilon tolerance
func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

// Helper function to compare quaternions with epsilon tolerance
func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) &&
		almostEqual(a.V.X(), b.V.X(), epsilon) &&
		almostEqual(a.V.Y(), b.V.Y(), epsilon) &&
		almostEqual(a.V.Z(), b.V.Z(), epsilon)
}

// Helper function to compare Mat3 with epsilon tolerance
func mat3AlmostEqual(a, b mgl64.Mat3, epsilon float64) bool {
	for i := 0; i < 9; i++ {
		if !almostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}
