package lights

import "fmt"

// Validate checks that a light is usable for shading
func Validate(light Light) error {
	switch l := light.(type) {
	case nil:
		return fmt.Errorf("light is nil")
	case *Ambient:
		if l == nil {
			return fmt.Errorf("ambient light is nil")
		}
	case *Point:
		if l == nil {
			return fmt.Errorf("point light is nil")
		}
	case *Directional:
		if l == nil {
			return fmt.Errorf("directional light is nil")
		}
		if l.Direction.Length() == 0 {
			return fmt.Errorf("directional light needs a non-zero direction")
		}
	}
	return nil
}
