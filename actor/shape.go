package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeInterface is the interface that all body shapes must implement.
// A shape only matters at construction time: it provides the mass, the
// body-space inertia tensor, and the body-space reference points of the
// body it builds. It keeps no role once the Body exists.
type ShapeInterface interface {
	// Volume returns the geometric volume of the shape
	Volume() float64
	// ComputeMass calculates the mass of the shape given a density
	ComputeMass(density float64) float64
	// ComputeInertia calculates the body-space inertia tensor for the
	// given mass, expressed in the shape's principal axes
	ComputeInertia(mass float64) mgl64.Mat3
	// ReferencePoints returns the body-space points (e.g. corners) that
	// forces can be applied at
	ReferencePoints() []mgl64.Vec3
}

// Box is a rectangular cuboid centered on the body origin, axis-aligned
// in body space. Width, Height and Depth are the full extents.
type Box struct {
	Width  float64
	Height float64
	Depth  float64
}

func (b Box) Volume() float64 {
	return b.Width * b.Height * b.Depth
}

func (b Box) ComputeMass(density float64) float64 {
	return density * b.Volume()
}

// ComputeInertia returns the closed-form diagonal inertia tensor of a
// solid box: I = (m/12) * diag(h²+d², w²+d², w²+h²).
func (b Box) ComputeInertia(mass float64) mgl64.Mat3 {
	factor := mass / 12.0
	ix := factor * (b.Height*b.Height + b.Depth*b.Depth)
	iy := factor * (b.Width*b.Width + b.Depth*b.Depth)
	iz := factor * (b.Width*b.Width + b.Height*b.Height)

	return mgl64.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, iz,
	}
}

// ReferencePoints returns the 8 corners of the box in body space.
func (b Box) ReferencePoints() []mgl64.Vec3 {
	hx := 0.5 * b.Width
	hy := 0.5 * b.Height
	hz := 0.5 * b.Depth

	return []mgl64.Vec3{
		{-hx, -hy, -hz},
		{+hx, -hy, -hz},
		{+hx, +hy, -hz},
		{-hx, +hy, -hz},

		{-hx, -hy, +hz},
		{+hx, -hy, +hz},
		{+hx, +hy, +hz},
		{-hx, +hy, +hz},
	}
}

// Sphere is a solid ball centered on the body origin.
type Sphere struct {
	Radius float64
}

func (s Sphere) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * math.Pow(s.Radius, 3)
}

func (s Sphere) ComputeMass(density float64) float64 {
	return density * s.Volume()
}

// ComputeInertia returns the isotropic inertia tensor of a solid
// sphere: I = (2/5) * m * r² on every axis.
func (s Sphere) ComputeInertia(mass float64) mgl64.Mat3 {
	i := (2.0 / 5.0) * mass * s.Radius * s.Radius

	return mgl64.Mat3{
		i, 0, 0,
		0, i, 0,
		0, 0, i,
	}
}

// ReferencePoints returns the 6 axis extreme points of the sphere in
// body space.
func (s Sphere) ReferencePoints() []mgl64.Vec3 {
	r := s.Radius

	return []mgl64.Vec3{
		{+r, 0, 0},
		{-r, 0, 0},
		{0, +r, 0},
		{0, -r, 0},
		{0, 0, +r},
		{0, 0, -r},
	}
}
