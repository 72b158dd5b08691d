package renderer

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Camera generates primary rays for canvas pixels
type Camera struct {
	position         core.Vec3
	rotation         core.Mat3
	viewportSize     float64
	projectionPlaneZ float64
	width, height    int
}

// NewCamera creates a camera for the scene projected onto a width x height canvas
func NewCamera(s *scene.Scene, width, height int) *Camera {
	return &Camera{
		position:         s.CameraPosition,
		rotation:         s.Rotation(),
		viewportSize:     s.ViewportSize,
		projectionPlaneZ: s.ProjectionPlaneZ,
		width:            width,
		height:           height,
	}
}

// CanvasToViewport maps a center-origin canvas coordinate to a point on the
// viewport plane in camera space
func (c *Camera) CanvasToViewport(x, y int) core.Vec3 {
	return core.Vec3{
		X: float64(x) * c.viewportSize / float64(c.width),
		Y: float64(y) * c.viewportSize / float64(c.height),
		Z: c.projectionPlaneZ,
	}
}

// GetRay returns the primary ray through canvas pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	direction := c.rotation.MultiplyVec(c.CanvasToViewport(x, y))
	return core.NewRay(c.position, direction)
}
