package renderer

import (
	"context"
	"image/color"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func TestNewRenderer_Validation(t *testing.T) {
	invalid := scene.NewReferenceScene()
	invalid.Spheres[0].Radius = -1

	tests := []struct {
		name   string
		scene  *scene.Scene
		canvas Canvas
	}{
		{"nil scene", nil, NewImageCanvas(4, 4)},
		{"invalid scene", invalid, NewImageCanvas(4, 4)},
		{"zero width", scene.NewReferenceScene(), NewImageCanvas(0, 4)},
		{"negative height", scene.NewReferenceScene(), newRecordingCanvas(4, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.scene, tt.canvas, integrator.DefaultConfig(), nil)
			if err == nil {
				t.Error("Expected error, got none")
			}
			if r != nil {
				t.Error("Expected nil renderer on error")
			}
		})
	}
}

func TestRenderer_SingleSphere(t *testing.T) {
	canvas := NewImageCanvas(4, 4)
	r, err := NewRenderer(scene.NewSingleSphereScene(), canvas, integrator.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r.Render()
	img := canvas.Image()

	// Canvas (0,0) looks straight at the sphere
	if got := img.RGBAAt(2, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red at the center, got %v", got)
	}
	// Canvas (-2,-2) misses it
	if got := img.RGBAAt(0, 3); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white background in the corner, got %v", got)
	}
}

func TestRenderer_SetShadowEpsilon(t *testing.T) {
	canvas := newRecordingCanvas(3, 3)
	logger := &recordingLogger{}
	r, err := NewRenderer(scene.NewReferenceScene(), canvas, integrator.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	r.SetShadowEpsilon(0)
	if r.Config().ShadowEpsilon != 0 {
		t.Errorf("Expected epsilon 0, got %g", r.Config().ShadowEpsilon)
	}
	if canvas.presents != 1 {
		t.Errorf("Expected SetShadowEpsilon to render once, got %d presents", canvas.presents)
	}
	if r.Config().MaxDepth != integrator.DefaultConfig().MaxDepth {
		t.Errorf("Expected max depth untouched, got %d", r.Config().MaxDepth)
	}
	if len(logger.lines) == 0 {
		t.Error("Expected render progress to be logged")
	}
}

func TestRenderer_SetShadowEpsilonContext(t *testing.T) {
	canvas := newRecordingCanvas(3, 3)
	r, err := NewRenderer(scene.NewReferenceScene(), canvas, integrator.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats, err := r.SetShadowEpsilonContext(context.Background(), 0.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Config.ShadowEpsilon != 0.5 {
		t.Errorf("Expected stats epsilon 0.5, got %g", stats.Config.ShadowEpsilon)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.SetShadowEpsilonContext(ctx, 0); err == nil {
		t.Error("Expected an error for a cancelled render")
	}
	if canvas.presents != 1 {
		t.Errorf("Expected only the successful render to present, got %d presents", canvas.presents)
	}
	if r.Config().ShadowEpsilon != 0 {
		t.Errorf("Expected the new epsilon to stick for later renders, got %g", r.Config().ShadowEpsilon)
	}
}

func TestRenderer_StatsCarryConfigSnapshot(t *testing.T) {
	config := integrator.Config{ShadowEpsilon: 0.25, MaxDepth: 1}
	r, err := NewRenderer(scene.NewReferenceScene(), newRecordingCanvas(2, 2), config, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	stats, err := r.RenderContext(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Config != config {
		t.Errorf("Expected stats config %+v, got %+v", config, stats.Config)
	}
	if stats.TotalPixels != 4 {
		t.Errorf("Expected 4 pixels, got %d", stats.TotalPixels)
	}
}

func TestRenderer_ShadowAcne(t *testing.T) {
	const size = 64
	render := func(epsilon float64) *ImageCanvas {
		canvas := NewImageCanvas(size, size)
		config := integrator.DefaultConfig()
		config.ShadowEpsilon = epsilon
		r, err := NewRenderer(scene.NewReferenceScene(), canvas, config, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		r.Render()
		return canvas
	}

	biased := render(0.001).Image()
	acne := render(0).Image()

	differing := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if biased.RGBAAt(x, y) != acne.RGBAAt(x, y) {
				differing++
			}
		}
	}
	if differing == 0 {
		t.Error("Expected zero shadow epsilon to self-shadow some pixels")
	}
	t.Logf("%d of %d pixels differ between epsilon 0 and 0.001", differing, size*size)
}

// With the default bias, a surface facing the point light and not blocked by
// any other sphere must receive that light: no pixel is self-shadowed.
func TestRenderer_NoShadowAcneWithBias(t *testing.T) {
	const size = 64
	s := scene.NewReferenceScene()
	r, err := NewRenderer(s, NewImageCanvas(size, size), integrator.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var ambient float64
	var point *lights.Point
	for _, light := range s.Lights {
		switch l := light.(type) {
		case *lights.Ambient:
			ambient += l.Intensity
		case *lights.Point:
			point = l
		}
	}
	if point == nil {
		t.Fatal("Expected the reference scene to have a point light")
	}

	checked := 0
	for x := -size / 2; x < size-size/2; x++ {
		for y := -size / 2; y < size-size/2; y++ {
			info, found := r.Inspect(x, y)
			if !found {
				continue
			}

			toLight := point.Position.Subtract(info.Point)
			cosine := info.Normal.Dot(toLight) / toLight.Length()
			if cosine < 0.05 {
				continue
			}

			others := make([]*geometry.Sphere, 0, len(s.Spheres)-1)
			for _, sphere := range s.Spheres {
				if sphere != info.Sphere {
					others = append(others, sphere)
				}
			}
			if geometry.Occluded(others, core.NewRay(info.Point, toLight), 0.001, 1) {
				continue
			}

			checked++
			minimum := ambient + point.Intensity*cosine
			if info.Lighting < minimum-1e-9 {
				t.Errorf("Pixel (%d,%d) on sphere %d is self-shadowed: lighting %g < %g",
					x, y, info.Index, info.Lighting, minimum)
			}
		}
	}

	if checked == 0 {
		t.Fatal("Expected some pixels to face the point light")
	}
}

func TestRenderer_Inspect(t *testing.T) {
	r, err := NewRenderer(scene.NewSingleSphereScene(), NewImageCanvas(10, 10), integrator.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	info, found := r.Inspect(0, 0)
	if !found {
		t.Fatal("Expected the center pixel to hit the sphere")
	}
	if info.Color != core.NewVec3(255, 0, 0) {
		t.Errorf("Expected red, got %v", info.Color)
	}

	if _, found := r.Inspect(-5, 5); found {
		t.Error("Expected the corner pixel to miss")
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	canvas := newRecordingCanvas(4, 4)
	r, err := NewRenderer(scene.NewReferenceScene(), canvas, integrator.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.RenderContext(ctx); err == nil {
		t.Error("Expected an error for a cancelled render")
	}
	if canvas.presents != 0 {
		t.Error("Expected a cancelled render not to present")
	}
}
