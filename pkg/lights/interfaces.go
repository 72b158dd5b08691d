package lights

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

type LightType string

const (
	LightTypeAmbient     LightType = "ambient"
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light is one of Ambient, Point or Directional. The set is closed: the
// unexported marker keeps other packages from adding variants.
type Light interface {
	Type() LightType

	// Power returns the scalar intensity of the light
	Power() float64

	isLight()
}

// Occludable is implemented by lights that arrive from a direction and can
// therefore be blocked by geometry.
type Occludable interface {
	Light

	// Incident returns the (unnormalized) vector from point toward the light and
	// the ray parameter bound for shadow tests along it.
	Incident(point core.Vec3) (lightVector core.Vec3, tMax float64)
}

// Ambient light illuminates every point equally
type Ambient struct {
	Intensity float64
}

// Point light radiates from a position in space
type Point struct {
	Intensity float64
	Position  core.Vec3
}

// Directional light arrives from infinitely far away along a fixed direction.
// Only the direction matters, never the magnitude.
type Directional struct {
	Intensity float64
	Direction core.Vec3
}

// NewAmbient creates a new ambient light
func NewAmbient(intensity float64) *Ambient {
	return &Ambient{Intensity: intensity}
}

// NewPoint creates a new point light
func NewPoint(intensity float64, position core.Vec3) *Point {
	return &Point{Intensity: intensity, Position: position}
}

// NewDirectional creates a new directional light
func NewDirectional(intensity float64, direction core.Vec3) *Directional {
	return &Directional{Intensity: intensity, Direction: direction}
}

func (a *Ambient) Type() LightType     { return LightTypeAmbient }
func (p *Point) Type() LightType       { return LightTypePoint }
func (d *Directional) Type() LightType { return LightTypeDirectional }

func (a *Ambient) Power() float64     { return a.Intensity }
func (p *Point) Power() float64       { return p.Intensity }
func (d *Directional) Power() float64 { return d.Intensity }

func (*Ambient) isLight()     {}
func (*Point) isLight()       {}
func (*Directional) isLight() {}

// Incident for a point light spans from the surface to the light position;
// occluders only count between the two (t < 1).
func (p *Point) Incident(point core.Vec3) (core.Vec3, float64) {
	return p.Position.Subtract(point), 1.0
}

// Incident for a directional light is the direction itself, unbounded
func (d *Directional) Incident(point core.Vec3) (core.Vec3, float64) {
	return d.Direction, math.Inf(1)
}
