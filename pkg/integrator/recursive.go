package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// RecursiveIntegrator implements Whitted-style ray tracing: local Phong
// shading with hard shadows plus recursive mirror reflection.
type RecursiveIntegrator struct {
	scene  *scene.Scene
	config Config
}

// NewRecursiveIntegrator creates a new recursive integrator. The config is
// copied, so later changes by the caller do not leak into this integrator.
func NewRecursiveIntegrator(s *scene.Scene, config Config) *RecursiveIntegrator {
	return &RecursiveIntegrator{
		scene:  s,
		config: config,
	}
}

// Config returns the configuration this integrator traces with
func (ri *RecursiveIntegrator) Config() Config {
	return ri.config
}

// Reflect mirrors v about normal n: 2*dot(v,n)*n - v. Both point away from the surface.
func Reflect(v, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * v.Dot(n)).Subtract(v)
}

// RayColor traces a primary ray from the camera. Primary rays start at the
// projection plane (t > 1) and may bounce up to MaxDepth times.
func (ri *RecursiveIntegrator) RayColor(ray core.Ray) core.Vec3 {
	return ri.TraceRay(ray, 1, math.Inf(1), ri.config.MaxDepth)
}

// TraceRay returns the unclamped color seen along ray within (tMin, tMax),
// recursing into mirror reflections while depth remains.
func (ri *RecursiveIntegrator) TraceRay(ray core.Ray, tMin, tMax float64, depth int) core.Vec3 {
	hit, found := geometry.ClosestIntersection(ri.scene.Spheres, ray, tMin, tMax)
	if !found {
		return ri.scene.BackgroundColor
	}

	sphere := hit.Sphere
	point := ray.At(hit.T)
	normal := sphere.Normal(point)
	view := ray.Direction.Negate()

	lighting := ri.ComputeLighting(point, normal, view, sphere.Material.Specular)
	localColor := sphere.Material.Color.Multiply(lighting)

	reflective := sphere.Material.Reflective
	if reflective <= 0 || depth <= 0 {
		return localColor
	}

	reflectedRay := core.NewRay(point, Reflect(view, normal))
	reflectedColor := ri.TraceRay(reflectedRay, ri.config.ShadowEpsilon, math.Inf(1), depth-1)

	return localColor.Multiply(1 - reflective).Add(reflectedColor.Multiply(reflective))
}

// Inspection describes what a ray sees at its first hit
type Inspection struct {
	Sphere   *geometry.Sphere
	Index    int       // Position of Sphere in the scene's sphere list
	Point    core.Vec3 // Hit point
	Normal   core.Vec3 // Outward unit normal
	Distance float64   // Ray parameter of the hit
	Lighting float64   // Scalar intensity from ComputeLighting
	Color    core.Vec3 // Final clamped color of the ray
}

// Inspect reports the first surface a primary ray hits
func (ri *RecursiveIntegrator) Inspect(ray core.Ray) (Inspection, bool) {
	hit, found := geometry.ClosestIntersection(ri.scene.Spheres, ray, 1, math.Inf(1))
	if !found {
		return Inspection{}, false
	}

	point := ray.At(hit.T)
	normal := hit.Sphere.Normal(point)
	index := -1
	for i, s := range ri.scene.Spheres {
		if s == hit.Sphere {
			index = i
			break
		}
	}

	return Inspection{
		Sphere:   hit.Sphere,
		Index:    index,
		Point:    point,
		Normal:   normal,
		Distance: hit.T,
		Lighting: ri.ComputeLighting(point, normal, ray.Direction.Negate(), hit.Sphere.Material.Specular),
		Color:    ri.RayColor(ray).ClampColor(),
	}, true
}
