package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewReferenceScene creates the classic three spheres over a huge yellow
// ground sphere, lit by ambient, point and directional lights.
func NewReferenceScene() *Scene {
	s := NewEmptyScene("reference")

	s.AddSphere(core.NewVec3(0, -1, 3), 1, material.NewPhong(core.NewVec3(255, 0, 0), 500, 0.2))
	s.AddSphere(core.NewVec3(2, 0, 4), 1, material.NewPhong(core.NewVec3(0, 255, 0), 10, 0.4))
	s.AddSphere(core.NewVec3(-2, 0, 4), 1, material.NewPhong(core.NewVec3(0, 0, 255), 500, 0.3))
	s.AddSphere(core.NewVec3(0, -5001, 0), 5000, material.NewPhong(core.NewVec3(255, 255, 0), 1000, 0.5))

	s.AddAmbientLight(0.2)
	s.AddPointLight(0.6, core.NewVec3(2, 1, 0))
	s.AddDirectionalLight(0.2, core.NewVec3(1, 4, 4))

	return s
}

// NewSingleSphereScene creates one red sphere straight ahead under full ambient light
func NewSingleSphereScene() *Scene {
	s := NewEmptyScene("single-sphere")
	s.AddSphere(core.NewVec3(0, 0, 4), 1, material.NewPhong(core.NewVec3(255, 0, 0), 500, 0))
	s.AddAmbientLight(1)
	return s
}

// NewMirrorsScene creates two perfect mirrors facing each other with a small
// matte sphere between them, for exercising the reflection depth limit.
func NewMirrorsScene() *Scene {
	s := NewEmptyScene("mirrors")
	s.BackgroundColor = core.NewVec3(0, 0, 0)

	s.AddSphere(core.NewVec3(-2.5, 0, 6), 2, material.NewPhong(core.NewVec3(200, 200, 200), 1000, 1.0))
	s.AddSphere(core.NewVec3(2.5, 0, 6), 2, material.NewPhong(core.NewVec3(200, 200, 200), 1000, 1.0))
	s.AddSphere(core.NewVec3(0, -0.5, 4), 0.4, material.NewMatte(core.NewVec3(255, 128, 0)))

	s.AddAmbientLight(0.3)
	s.AddPointLight(0.7, core.NewVec3(0, 3, 2))

	return s
}

// NewRotatedReferenceScene is the reference scene seen from a camera moved
// to the side and turned back toward the spheres.
func NewRotatedReferenceScene() *Scene {
	s := NewReferenceScene()
	s.Name = "reference-rotated"
	s.CameraPosition = core.NewVec3(3, 0, 1)
	s.CameraRotation = core.RotationY(45)
	return s
}
