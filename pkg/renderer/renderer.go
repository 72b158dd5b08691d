package renderer

import (
	"context"
	"fmt"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/integrator"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Renderer owns a scene, an output canvas and the user-adjustable tracing
// configuration. Each render snapshots the configuration when it starts.
type Renderer struct {
	scene  *scene.Scene
	canvas Canvas
	camera *Camera
	logger core.Logger

	mu         sync.Mutex // guards config and cancelPrev
	config     integrator.Config
	cancelPrev context.CancelFunc

	renderMu sync.Mutex // serializes frames on the canvas
}

// NewRenderer validates the scene and canvas and creates a renderer
func NewRenderer(s *scene.Scene, canvas Canvas, config integrator.Config, logger core.Logger) (*Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if canvas.Width() <= 0 || canvas.Height() <= 0 {
		return nil, fmt.Errorf("canvas must have positive dimensions, got %dx%d", canvas.Width(), canvas.Height())
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:  s,
		canvas: canvas,
		camera: NewCamera(s, canvas.Width(), canvas.Height()),
		logger: logger,
		config: config,
	}, nil
}

// Config returns the configuration the next render will use
func (r *Renderer) Config() integrator.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

// Scene returns the scene being rendered
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Canvas returns the output surface
func (r *Renderer) Canvas() Canvas {
	return r.canvas
}

// SetShadowEpsilon changes the shadow bias used by subsequent renders and
// re-renders. 0 reproduces self-shadowing artifacts.
func (r *Renderer) SetShadowEpsilon(epsilon float64) {
	if _, err := r.SetShadowEpsilonContext(context.Background(), epsilon); err != nil {
		r.logger.Printf("Render failed: %v\n", err)
	}
}

// SetShadowEpsilonContext is SetShadowEpsilon with cancellation. The returned
// stats carry the configuration the frame was traced with; on error the
// canvas still holds the previously presented frame.
func (r *Renderer) SetShadowEpsilonContext(ctx context.Context, epsilon float64) (RenderStats, error) {
	r.mu.Lock()
	r.config.ShadowEpsilon = epsilon
	r.mu.Unlock()

	return r.RenderContext(ctx)
}

// Render draws the whole scene onto the canvas and presents it
func (r *Renderer) Render() {
	if _, err := r.RenderContext(context.Background()); err != nil {
		r.logger.Printf("Render failed: %v\n", err)
	}
}

// RenderContext is Render with cancellation and statistics. Starting a render
// cancels any render still in flight on this renderer.
func (r *Renderer) RenderContext(ctx context.Context) (RenderStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	r.cancelPrev = cancel
	config := r.config
	r.mu.Unlock()

	r.renderMu.Lock()
	defer r.renderMu.Unlock()

	r.logger.Printf("Rendering %q at %dx%d (shadow epsilon %g, max depth %d)...\n",
		r.scene.Name, r.canvas.Width(), r.canvas.Height(), config.ShadowEpsilon, config.MaxDepth)

	raytracer := NewRaytracer(r.camera, integrator.NewRecursiveIntegrator(r.scene, config))
	stats, err := raytracer.RenderFrame(ctx, r.canvas)
	stats.Config = config
	if err != nil {
		r.logger.Printf("Render of %q cancelled: %v\n", r.scene.Name, err)
		return stats, err
	}

	r.logger.Printf("Render completed in %v (%d pixels)\n", stats.Duration, stats.TotalPixels)
	return stats, nil
}

// Inspect reports what canvas pixel (x, y) sees, using the current configuration
func (r *Renderer) Inspect(x, y int) (integrator.Inspection, bool) {
	ri := integrator.NewRecursiveIntegrator(r.scene, r.Config())
	return ri.Inspect(r.camera.GetRay(x, y))
}
