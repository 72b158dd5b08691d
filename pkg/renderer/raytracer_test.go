package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// MockIntegrator implements integrator.Integrator for testing
type MockIntegrator struct {
	rayColorFn func(ray core.Ray) core.Vec3
	calls      int
}

func (m *MockIntegrator) RayColor(ray core.Ray) core.Vec3 {
	m.calls++
	return m.rayColorFn(ray)
}

func TestRaytracer_EveryPixelExactlyOnce(t *testing.T) {
	sizes := [][2]int{{4, 4}, {5, 3}, {1, 1}, {7, 2}}

	for _, size := range sizes {
		width, height := size[0], size[1]
		canvas := newRecordingCanvas(width, height)
		mock := &MockIntegrator{rayColorFn: func(core.Ray) core.Vec3 { return core.NewVec3(1, 2, 3) }}
		rt := NewRaytracer(NewCamera(scene.NewReferenceScene(), width, height), mock)

		stats, err := rt.RenderFrame(context.Background(), canvas)
		if err != nil {
			t.Fatalf("%dx%d: unexpected error: %v", width, height, err)
		}

		if stats.TotalPixels != width*height || mock.calls != width*height {
			t.Errorf("%dx%d: expected %d pixels traced, got stats=%d calls=%d",
				width, height, width*height, stats.TotalPixels, mock.calls)
		}
		if len(canvas.writes) != width*height {
			t.Errorf("%dx%d: expected %d distinct pixels, got %d", width, height, width*height, len(canvas.writes))
		}
		for p, count := range canvas.writes {
			if count != 1 {
				t.Errorf("%dx%d: pixel %v written %d times", width, height, p, count)
			}
			if p[0] < -width/2 || p[0] >= width-width/2 || p[1] < -height/2 || p[1] >= height-height/2 {
				t.Errorf("%dx%d: pixel %v outside the canvas", width, height, p)
			}
		}
		if canvas.presents != 1 {
			t.Errorf("%dx%d: expected exactly one Present, got %d", width, height, canvas.presents)
		}
	}
}

func TestRaytracer_ClampsBeforeWriting(t *testing.T) {
	canvas := newRecordingCanvas(2, 2)
	mock := &MockIntegrator{rayColorFn: func(core.Ray) core.Vec3 { return core.NewVec3(-40, 128, 9000) }}
	rt := NewRaytracer(NewCamera(scene.NewReferenceScene(), 2, 2), mock)

	if _, err := rt.RenderFrame(context.Background(), canvas); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for p, c := range canvas.colors {
		if c != core.NewVec3(0, 128, 255) {
			t.Errorf("Pixel %v: expected clamped (0,128,255), got %v", p, c)
		}
	}
}

func TestRaytracer_PassesViewportDirections(t *testing.T) {
	canvas := newRecordingCanvas(4, 4)
	camera := NewCamera(scene.NewReferenceScene(), 4, 4)
	mock := &MockIntegrator{rayColorFn: func(ray core.Ray) core.Vec3 {
		// Encode the direction so each pixel can be checked afterwards
		return core.NewVec3(ray.Direction.X*100+100, ray.Direction.Y*100+100, ray.Direction.Z*100)
	}}
	rt := NewRaytracer(camera, mock)

	if _, err := rt.RenderFrame(context.Background(), canvas); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for p, c := range canvas.colors {
		d := camera.CanvasToViewport(p[0], p[1])
		expected := core.NewVec3(d.X*100+100, d.Y*100+100, d.Z*100)
		if !c.Equals(expected, 1e-9) {
			t.Errorf("Pixel %v: expected %v, got %v", p, expected, c)
		}
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	canvas := newRecordingCanvas(8, 8)
	ri := integrator.NewRecursiveIntegrator(scene.NewReferenceScene(), integrator.DefaultConfig())
	rt := NewRaytracer(NewCamera(scene.NewReferenceScene(), 8, 8), ri)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rt.RenderFrame(ctx, canvas)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if canvas.presents != 0 {
		t.Error("Expected a cancelled frame not to be presented")
	}
}
