package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Hit is the closest intersection found along a ray
type Hit struct {
	Sphere *Sphere
	T      float64
}

// ClosestIntersection scans every sphere and returns the smallest root
// strictly inside (tMin, tMax). On equal roots the sphere scanned first wins.
func ClosestIntersection(spheres []*Sphere, ray core.Ray, tMin, tMax float64) (Hit, bool) {
	closestT := math.Inf(1)
	var closest *Sphere

	for _, sphere := range spheres {
		t1, t2 := sphere.IntersectRay(ray)
		if t1 < closestT && tMin < t1 && t1 < tMax {
			closestT = t1
			closest = sphere
		}
		if t2 < closestT && tMin < t2 && t2 < tMax {
			closestT = t2
			closest = sphere
		}
	}

	if closest == nil {
		return Hit{}, false
	}
	return Hit{Sphere: closest, T: closestT}, true
}

// Occluded reports whether anything blocks the ray inside (tMin, tMax)
func Occluded(spheres []*Sphere, ray core.Ray, tMin, tMax float64) bool {
	_, found := ClosestIntersection(spheres, ray, tMin, tMax)
	return found
}
