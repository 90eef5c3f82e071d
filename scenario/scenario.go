// Package scenario describes a complete single-body simulation — shape,
// density, gravity, time step and scripted impulses — as plain data
// loadable from YAML, and builds the solver that runs it.
package scenario

import (
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/keel"
	"github.com/akmonengine/keel/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// BodyConfig describes the simulated body.
type BodyConfig struct {
	Shape string `yaml:"shape"` // "box" or "sphere"
	// Dimensions holds width, height, depth for a box
	Dimensions []float64 `yaml:"dimensions,omitempty"`
	Radius     float64   `yaml:"radius,omitempty"`
	Density    float64   `yaml:"density"`

	Position        []float64 `yaml:"position,omitempty"`
	Velocity        []float64 `yaml:"velocity,omitempty"`
	AngularVelocity []float64 `yaml:"angular_velocity,omitempty"`
}

// ImpulseConfig describes a one-time force applied at a body reference
// point on a specific step index.
type ImpulseConfig struct {
	Step  int       `yaml:"step"`
	Force []float64 `yaml:"force"`
	Point int       `yaml:"point"`
}

// Scenario is the root configuration document.
type Scenario struct {
	Name    string    `yaml:"name,omitempty"`
	Gravity []float64 `yaml:"gravity,omitempty"`
	Dt      float64   `yaml:"dt"`
	Steps   int       `yaml:"steps"`

	Body     BodyConfig      `yaml:"body"`
	Impulses []ImpulseConfig `yaml:"impulses,omitempty"`

	TrackWorldInertia bool `yaml:"track_world_inertia,omitempty"`
}

// Load reads a YAML scenario from r and validates it.
func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scenario: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadFile reads a YAML scenario from the file at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks the structural consistency of the document. Physical
// preconditions (positive mass) are enforced by actor.NewBody at build
// time.
func (s *Scenario) Validate() error {
	switch s.Body.Shape {
	case "box":
		if len(s.Body.Dimensions) != 3 {
			return fmt.Errorf("scenario: box dimensions must have 3 components, got %d", len(s.Body.Dimensions))
		}
	case "sphere":
		if s.Body.Radius <= 0 {
			return fmt.Errorf("scenario: sphere radius must be positive, got %v", s.Body.Radius)
		}
	default:
		return fmt.Errorf("scenario: unknown shape %q", s.Body.Shape)
	}

	if s.Steps < 0 {
		return fmt.Errorf("scenario: steps must not be negative, got %d", s.Steps)
	}

	for name, v := range map[string][]float64{
		"gravity":               s.Gravity,
		"body.position":         s.Body.Position,
		"body.velocity":         s.Body.Velocity,
		"body.angular_velocity": s.Body.AngularVelocity,
	} {
		if len(v) != 0 && len(v) != 3 {
			return fmt.Errorf("scenario: %s must have 3 components, got %d", name, len(v))
		}
	}

	for i, impulse := range s.Impulses {
		if len(impulse.Force) != 3 {
			return fmt.Errorf("scenario: impulse %d force must have 3 components, got %d", i, len(impulse.Force))
		}
		if impulse.Step < 0 || impulse.Point < 0 {
			return fmt.Errorf("scenario: impulse %d step and point must not be negative", i)
		}
	}

	return nil
}

func (s *Scenario) shape() actor.ShapeInterface {
	if s.Body.Shape == "sphere" {
		return actor.Sphere{Radius: s.Body.Radius}
	}

	return actor.Box{
		Width:  s.Body.Dimensions[0],
		Height: s.Body.Dimensions[1],
		Depth:  s.Body.Dimensions[2],
	}
}

// Build constructs the body and its solver. Extra solver options are
// appended after the ones derived from the document, so callers can
// attach an observer.
func (s *Scenario) Build(opts ...keel.Option) (*keel.Solver, *actor.Body, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	body, err := actor.NewBody(s.shape(), s.Body.Density, vec3(s.Body.Velocity), vec3(s.Body.AngularVelocity))
	if err != nil {
		return nil, nil, fmt.Errorf("scenario: %w", err)
	}
	body.Position = vec3(s.Body.Position)

	options := make([]keel.Option, 0, len(opts)+2)
	if len(s.Impulses) > 0 {
		schedule := make(keel.ImpulseSchedule, 0, len(s.Impulses))
		for _, impulse := range s.Impulses {
			schedule = append(schedule, keel.Impulse{
				Step:  impulse.Step,
				Force: vec3(impulse.Force),
				Point: impulse.Point,
			})
		}
		if err := schedule.Validate(body); err != nil {
			return nil, nil, err
		}
		options = append(options, keel.WithForcePolicy(schedule.Policy()))
	}
	if s.TrackWorldInertia {
		options = append(options, keel.TrackWorldInertia())
	}
	options = append(options, opts...)

	return keel.NewSolver(body, vec3(s.Gravity), options...), body, nil
}

// Run builds the scenario and advances it for its configured number of
// steps, returning the final body state.
func (s *Scenario) Run(observer keel.StepObserver) (*actor.Body, error) {
	opts := []keel.Option{}
	if observer != nil {
		opts = append(opts, keel.WithObserver(observer))
	}

	solver, body, err := s.Build(opts...)
	if err != nil {
		return nil, err
	}

	for iter := 0; iter < s.Steps; iter++ {
		if err := solver.Step(s.Dt); err != nil {
			return nil, err
		}
	}

	return body, nil
}

func vec3(v []float64) mgl64.Vec3 {
	if len(v) != 3 {
		return mgl64.Vec3{}
	}

	return mgl64.Vec3{v[0], v[1], v[2]}
}
