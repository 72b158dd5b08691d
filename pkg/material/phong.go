package material

import (
	"fmt"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// NoSpecular disables the specular highlight term
const NoSpecular = -1.0

// Phong describes how a surface responds to local lighting and mirror reflection
type Phong struct {
	Color      core.Vec3 // RGB, each channel 0-255
	Specular   float64   // Phong exponent, or NoSpecular
	Reflective float64   // 0.0 = matte, 1.0 = perfect mirror
}

// NewPhong creates a new Phong material
func NewPhong(color core.Vec3, specular, reflective float64) Phong {
	return Phong{Color: color, Specular: specular, Reflective: reflective}
}

// NewMatte creates a material with no highlight and no reflection
func NewMatte(color core.Vec3) Phong {
	return Phong{Color: color, Specular: NoSpecular}
}

// HasSpecular reports whether the specular term contributes
func (m Phong) HasSpecular() bool {
	return m.Specular != NoSpecular
}

// IsReflective reports whether reflected rays contribute to the final color
func (m Phong) IsReflective() bool {
	return m.Reflective > 0
}

// Validate checks the material invariants
func (m Phong) Validate() error {
	if m.Specular != NoSpecular && !(m.Specular > 0) {
		return fmt.Errorf("specular must be -1 or > 0, got %g", m.Specular)
	}
	if !(m.Reflective >= 0 && m.Reflective <= 1) {
		return fmt.Errorf("reflective must be in [0,1], got %g", m.Reflective)
	}
	for _, c := range []float64{m.Color.X, m.Color.Y, m.Color.Z} {
		if !(c >= 0 && c <= 255) {
			return fmt.Errorf("color channels must be in [0,255], got %v", m.Color)
		}
	}
	return nil
}
