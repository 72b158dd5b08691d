package renderer

import (
	"context"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/integrator"
)

// Raytracer drives one frame: every canvas pixel is traced exactly once
type Raytracer struct {
	camera     *Camera
	integrator integrator.Integrator
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, integratorInst integrator.Integrator) *Raytracer {
	return &Raytracer{
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderFrame traces every pixel of the canvas, writes the clamped colors and
// presents the canvas. Cancellation is checked once per column; a cancelled
// frame is never presented.
func (rt *Raytracer) RenderFrame(ctx context.Context, canvas Canvas) (RenderStats, error) {
	startTime := time.Now()
	width, height := canvas.Width(), canvas.Height()
	stats := RenderStats{}

	for x := -width / 2; x < width-width/2; x++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for y := -height / 2; y < height-height/2; y++ {
			ray := rt.camera.GetRay(x, y)
			color := rt.integrator.RayColor(ray)
			canvas.SetPixel(x, y, color.ClampColor())
			stats.TotalPixels++
		}
	}

	canvas.Present()
	stats.Duration = time.Since(startTime)
	return stats, nil
}
