package renderer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Canvas is the output surface a frame is drawn on. Coordinates are center
// origin with +y up: x in [-W/2, W-W/2), y in [-H/2, H-H/2).
type Canvas interface {
	Width() int
	Height() int
	// SetPixel writes a color with channels already in [0,255]. Writes
	// outside the canvas are dropped.
	SetPixel(x, y int, c core.Vec3)
	// Present publishes everything written since the last Present
	Present()
}

// ImageCanvas draws into an offscreen RGBA buffer and publishes a copy on Present
type ImageCanvas struct {
	width, height int
	buffer        *image.RGBA

	mu        sync.RWMutex
	presented *image.RGBA
}

// NewImageCanvas creates a canvas of the given size
func NewImageCanvas(width, height int) *ImageCanvas {
	return &ImageCanvas{
		width:     width,
		height:    height,
		buffer:    image.NewRGBA(image.Rect(0, 0, width, height)),
		presented: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (ic *ImageCanvas) Width() int  { return ic.width }
func (ic *ImageCanvas) Height() int { return ic.height }

// SetPixel implements Canvas
func (ic *ImageCanvas) SetPixel(x, y int, c core.Vec3) {
	sx, sy := ic.toScreen(x, y)
	if sx < 0 || sx >= ic.width || sy < 0 || sy >= ic.height {
		return
	}
	ic.buffer.SetRGBA(sx, sy, vec3ToColor(c))
}

// Present implements Canvas
func (ic *ImageCanvas) Present() {
	snapshot := image.NewRGBA(ic.buffer.Rect)
	copy(snapshot.Pix, ic.buffer.Pix)

	ic.mu.Lock()
	ic.presented = snapshot
	ic.mu.Unlock()
}

// Image returns the most recently presented frame. The caller must not modify it.
func (ic *ImageCanvas) Image() *image.RGBA {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.presented
}

// toScreen converts center-origin, y-up coordinates to top-left origin, y-down
func (ic *ImageCanvas) toScreen(x, y int) (int, int) {
	return ic.width/2 + x, (ic.height - ic.height/2) - 1 - y
}

// ScreenToCanvas converts a top-left origin pixel (as reported by an image
// viewer) back to the center-origin canvas coordinate that produced it
func ScreenToCanvas(width, height, sx, sy int) (int, int) {
	return sx - width/2, (height - height/2) - 1 - sy
}

// vec3ToColor converts a color with 0-255 channels to opaque RGBA
func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.ClampColor()
	return color.RGBA{
		R: uint8(math.Round(c.X)),
		G: uint8(math.Round(c.Y)),
		B: uint8(math.Round(c.Z)),
		A: 255,
	}
}
