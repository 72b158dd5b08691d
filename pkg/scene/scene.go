package scene

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. It is built once and
// treated as read-only while any render is using it.
type Scene struct {
	Name             string
	ViewportSize     float64   // Width and height of the viewport window
	ProjectionPlaneZ float64   // Distance from the camera to the viewport
	CameraPosition   core.Vec3 // Origin of every primary ray
	CameraRotation   core.Mat3 // Applied to viewport points; zero value means identity
	BackgroundColor  core.Vec3 // Returned by rays that hit nothing
	Spheres          []*geometry.Sphere
	Lights           []lights.Light
}

// NewEmptyScene creates a scene with the standard camera and viewport and no objects
func NewEmptyScene(name string) *Scene {
	return &Scene{
		Name:             name,
		ViewportSize:     1,
		ProjectionPlaneZ: 1,
		CameraPosition:   core.NewVec3(0, 0, 0),
		CameraRotation:   core.Identity3(),
		BackgroundColor:  core.NewVec3(255, 255, 255),
		Spheres:          make([]*geometry.Sphere, 0),
		Lights:           make([]lights.Light, 0),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Phong) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Spheres = append(s.Spheres, sphere)
	return sphere
}

// AddAmbientLight adds an ambient light to the scene
func (s *Scene) AddAmbientLight(intensity float64) {
	s.Lights = append(s.Lights, lights.NewAmbient(intensity))
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(intensity float64, position core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPoint(intensity, position))
}

// AddDirectionalLight adds a directional light to the scene
func (s *Scene) AddDirectionalLight(intensity float64, direction core.Vec3) {
	s.Lights = append(s.Lights, lights.NewDirectional(intensity, direction))
}

// Rotation returns the camera rotation, treating the zero matrix as identity
func (s *Scene) Rotation() core.Mat3 {
	if s.CameraRotation.IsZero() {
		return core.Identity3()
	}
	return s.CameraRotation
}

// Validate checks the preconditions the tracer relies on but never checks itself
func (s *Scene) Validate() error {
	if !(s.ViewportSize > 0) {
		return fmt.Errorf("scene %q: viewport size must be > 0, got %g", s.Name, s.ViewportSize)
	}
	if s.ProjectionPlaneZ == 0 {
		return fmt.Errorf("scene %q: projection plane distance must be non-zero", s.Name)
	}
	for i, sphere := range s.Spheres {
		if sphere == nil {
			return fmt.Errorf("scene %q: sphere %d is nil", s.Name, i)
		}
		if err := sphere.Validate(); err != nil {
			return fmt.Errorf("scene %q: sphere %d: %w", s.Name, i, err)
		}
	}
	for i, light := range s.Lights {
		if err := lights.Validate(light); err != nil {
			return fmt.Errorf("scene %q: light %d: %w", s.Name, i, err)
		}
	}
	return nil
}
