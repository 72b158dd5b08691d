package integrator

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// ComputeLighting returns the scalar light intensity reaching point: every
// ambient light plus the Lambertian and Phong terms of every unoccluded point
// or directional light. Neither normal nor view needs to be normalized. The
// result is unbounded above.
func (ri *RecursiveIntegrator) ComputeLighting(point, normal, view core.Vec3, specular float64) float64 {
	intensity := 0.0
	normalLength := normal.Length()
	viewLength := view.Length()

	for _, light := range ri.scene.Lights {
		switch l := light.(type) {
		case *lights.Ambient:
			intensity += l.Intensity

		case lights.Occludable:
			lightVector, tMax := l.Incident(point)

			// Shadow check: any blocker removes this light entirely
			shadowRay := core.NewRay(point, lightVector)
			if geometry.Occluded(ri.scene.Spheres, shadowRay, ri.config.ShadowEpsilon, tMax) {
				continue
			}

			// Diffuse
			nDotL := normal.Dot(lightVector)
			if nDotL > 0 {
				intensity += l.Power() * nDotL / (normalLength * lightVector.Length())
			}

			// Specular
			if specular != material.NoSpecular {
				reflected := Reflect(lightVector, normal)
				rDotV := reflected.Dot(view)
				if rDotV > 0 {
					intensity += l.Power() * math.Pow(rDotV/(reflected.Length()*viewLength), specular)
				}
			}
		}
	}

	return intensity
}
