package keel

import (
	"fmt"

	"github.com/akmonengine/keel/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ForcePolicy computes the scenario-specific force and torque to apply
// on a given step, before integration. Gravity is not part of a policy;
// the solver always applies M·g itself and adds the policy output to it.
// A policy must be a pure function of its arguments.
type ForcePolicy func(body *actor.Body, stepIndex int, simTime float64) (force, torque mgl64.Vec3)

// ComposePolicies returns a policy summing the output of all given
// policies.
func ComposePolicies(policies ...ForcePolicy) ForcePolicy {
	return func(body *actor.Body, stepIndex int, simTime float64) (mgl64.Vec3, mgl64.Vec3) {
		var force, torque mgl64.Vec3
		for _, policy := range policies {
			f, tau := policy(body, stepIndex, simTime)
			force = force.Add(f)
			torque = torque.Add(tau)
		}

		return force, torque
	}
}

// Impulse is a one-time force applied at one of the body's reference
// points on a single step index. The torque it produces is the cross
// product of the world-space lever arm of the point with the force.
type Impulse struct {
	Step  int
	Force mgl64.Vec3
	Point int
}

// ImpulseSchedule is a scripted set of impulses keyed on step index.
type ImpulseSchedule []Impulse

// Validate checks that every impulse references an existing body
// reference point.
func (schedule ImpulseSchedule) Validate(body *actor.Body) error {
	for i, impulse := range schedule {
		if impulse.Point < 0 || impulse.Point >= body.ReferencePointCount() {
			return fmt.Errorf("keel: impulse %d references point %d, body has %d reference points",
				i, impulse.Point, body.ReferencePointCount())
		}
	}

	return nil
}

// Policy returns the ForcePolicy applying the schedule. Impulses with
// an out-of-range point index are skipped; use Validate to reject them
// up front.
func (schedule ImpulseSchedule) Policy() ForcePolicy {
	return func(body *actor.Body, stepIndex int, _ float64) (mgl64.Vec3, mgl64.Vec3) {
		var force, torque mgl64.Vec3
		for _, impulse := range schedule {
			if impulse.Step != stepIndex {
				continue
			}
			if impulse.Point < 0 || impulse.Point >= body.ReferencePointCount() {
				continue
			}

			// lever arm from the center of mass to the application
			// point, in world space
			lever := body.ReferencePointWorld(impulse.Point).Sub(body.Position)

			force = force.Add(impulse.Force)
			torque = torque.Add(lever.Cross(impulse.Force))
		}

		return force, torque
	}
}
