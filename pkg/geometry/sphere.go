package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Phong) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// IntersectRay solves |origin + t*direction - center|^2 = radius^2 and returns
// both roots, unordered. A ray that misses yields (+Inf, +Inf).
func (s *Sphere) IntersectRay(ray core.Ray) (t1, t2 float64) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: k1*t² + k2*t + k3 = 0
	k1 := ray.Direction.Dot(ray.Direction)
	k2 := 2 * oc.Dot(ray.Direction)
	k3 := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := k2*k2 - 4*k1*k3
	if discriminant < 0 {
		return math.Inf(1), math.Inf(1)
	}

	sqrtD := math.Sqrt(discriminant)
	t1 = (-k2 + sqrtD) / (2 * k1)
	t2 = (-k2 - sqrtD) / (2 * k1)
	return t1, t2
}

// Normal returns the outward unit normal at a point on the surface
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Validate checks the sphere invariants
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("radius must be > 0, got %g", s.Radius)
	}
	return s.Material.Validate()
}
