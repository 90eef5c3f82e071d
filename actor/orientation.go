package actor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateOrientation is returned when an orientation quaternion
// collapses to zero magnitude and can no longer be normalized. It marks
// an invariant violation, not a recoverable condition.
var ErrDegenerateOrientation = errors.New("actor: orientation quaternion has zero magnitude")

// OrientationDerivative returns dq/dt = ½·(0,ω)⊗q, the rate of change
// of the orientation quaternion q under the angular velocity ω.
func OrientationDerivative(angularVelocity mgl64.Vec3, q mgl64.Quat) mgl64.Quat {
	omegaQuat := mgl64.Quat{W: 0, V: angularVelocity}
	return omegaQuat.Mul(q).Scale(0.5)
}

// IntegrateOrientation advances q by dt under the angular velocity ω
// using the first-order update q ← normalize(q + ½·(0,ω)⊗q·dt).
// Renormalization happens on every call; the first-order update drifts
// off the unit sphere and the drift must not accumulate.
func IntegrateOrientation(q mgl64.Quat, angularVelocity mgl64.Vec3, dt float64) (mgl64.Quat, error) {
	next := q.Add(OrientationDerivative(angularVelocity, q).Scale(dt))
	if next.Len() == 0 {
		// mgl64 silently maps the zero quaternion to identity,
		// which would mask the invariant violation
		return mgl64.Quat{}, ErrDegenerateOrientation
	}

	return next.Normalize(), nil
}

// RotationFrame returns the orthonormal 3×3 rotation matrix of a unit
// quaternion. The conversion is polynomial in the components; no
// trigonometry is involved.
func RotationFrame(q mgl64.Quat) mgl64.Mat3 {
	return q.Mat4().Mat3()
}
