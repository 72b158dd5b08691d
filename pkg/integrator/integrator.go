package integrator

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along a primary ray
	RayColor(ray core.Ray) core.Vec3
}

// Config is the render-scoped tracing configuration. It is captured once per
// render so a change to the shadow bias never affects a render in flight.
type Config struct {
	ShadowEpsilon float64 // Minimum t for shadow and reflection rays; 0 exposes shadow acne
	MaxDepth      int     // Maximum number of reflective bounces
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		ShadowEpsilon: 0.001,
		MaxDepth:      3,
	}
}
