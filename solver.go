package keel

import (
	"errors"

	"github.com/akmonengine/keel/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNoBody is returned by Step when the solver has no bound body.
var ErrNoBody = errors.New("keel: solver has no bound body")

// Solver advances the state of a single rigid body through time with
// semi-implicit Euler integration on linear and angular momentum.
// It holds a non-owning reference to exactly one body; the body never
// references the solver back.
//
// Step is not safe for concurrent use on the same solver; callers must
// serialize calls per body.
type Solver struct {
	body    *actor.Body
	gravity mgl64.Vec3

	policy   ForcePolicy
	observer StepObserver

	trackWorldInertia bool

	step    int
	simTime float64
}

// Option configures a Solver at construction.
type Option func(*Solver)

// WithForcePolicy installs a scenario force schedule. Its output is
// added to gravity on every step.
func WithForcePolicy(policy ForcePolicy) Option {
	return func(s *Solver) {
		s.policy = policy
	}
}

// WithObserver installs a hook invoked once after every completed step.
func WithObserver(observer StepObserver) Option {
	return func(s *Solver) {
		s.observer = observer
	}
}

// TrackWorldInertia makes the solver refresh the body's world-space
// inverse inertia to R·I0inv·Rᵗ after every step. Without this option
// the world-space inverse inertia stays equal to the body-space one,
// which is only exact for isotropic tensors or small angular
// excursions.
func TrackWorldInertia() Option {
	return func(s *Solver) {
		s.trackWorldInertia = true
	}
}

// NewSolver creates a solver bound to body under the given constant
// gravity acceleration.
func NewSolver(body *actor.Body, gravity mgl64.Vec3, opts ...Option) *Solver {
	s := &Solver{
		body:    body,
		gravity: gravity,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init rebinds the solver to a new body and gravity field and resets
// the step counter and accumulated simulation time to zero. Subsequent
// steps behave exactly as on a freshly constructed solver.
func (s *Solver) Init(body *actor.Body, gravity mgl64.Vec3) {
	s.body = body
	s.gravity = gravity
	s.step = 0
	s.simTime = 0
}

// Body returns the currently bound body.
func (s *Solver) Body() *actor.Body {
	return s.body
}

// StepCount returns the number of completed steps since the last Init.
func (s *Solver) StepCount() int {
	return s.step
}

// SimTime returns the accumulated simulation time since the last Init.
func (s *Solver) SimTime() float64 {
	return s.simTime
}

// Step advances the bound body by exactly dt time units:
//
//  1. accumulate net force and torque (gravity plus the force policy)
//  2. P ← P + F·dt, V ← P/M, X ← X + V·dt
//  3. L ← L + τ·dt, ω ← Iinv·L
//  4. q ← normalize(q + ½·(0,ω)⊗q·dt)
//  5. R ← rotation frame of q
//
// The updated velocity drives the position update, so a constant force
// yields the symplectic Euler recurrence, not the analytic trajectory.
// Zero and negative dt are accepted and produce a degenerate but
// well-defined result.
func (s *Solver) Step(dt float64) error {
	if s.body == nil {
		return ErrNoBody
	}
	body := s.body

	force := s.gravity.Mul(body.Mass)
	var torque mgl64.Vec3
	if s.policy != nil {
		policyForce, policyTorque := s.policy(body, s.step, s.simTime)
		force = force.Add(policyForce)
		torque = torque.Add(policyTorque)
	}
	body.Force = force
	body.Torque = torque

	body.Momentum = body.Momentum.Add(force.Mul(dt))
	body.Velocity = body.Momentum.Mul(1.0 / body.Mass)
	body.Position = body.Position.Add(body.Velocity.Mul(dt))

	body.AngularMomentum = body.AngularMomentum.Add(torque.Mul(dt))
	body.AngularVelocity = body.InverseInertiaWorld.Mul3x1(body.AngularMomentum)

	orientation, err := actor.IntegrateOrientation(body.Orientation, body.AngularVelocity, dt)
	if err != nil {
		return err
	}
	body.Orientation = orientation
	body.RotationFrame = actor.RotationFrame(orientation)

	if s.trackWorldInertia {
		r := body.RotationFrame
		body.InverseInertiaWorld = r.Mul3(body.InverseInertiaLocal).Mul3(r.Transpose())
	}

	completed := s.step
	s.step++
	s.simTime += dt

	if s.observer != nil {
		s.observer.OnStep(completed, s.simTime, dt)
	}

	return nil
}
