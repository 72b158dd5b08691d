package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}

	if length := NewVec3(3, 4, 0).Length(); math.Abs(length-5) > 1e-9 {
		t.Errorf("Expected length 5, got %f", length)
	}

	if length := NewVec3(0, 0, 0).Length(); length != 0 {
		t.Errorf("Expected zero vector length 0, got %f", length)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(0, 0, -7).Normalize()
	if !n.Equals(NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected (0,0,-1), got %v", n)
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Expected zero vector to normalize to zero, got %v", zero)
	}
}

func TestVec3_ClampColor(t *testing.T) {
	tests := []struct {
		name     string
		input    Vec3
		expected Vec3
	}{
		{"in range", NewVec3(10, 128, 255), NewVec3(10, 128, 255)},
		{"above range", NewVec3(300, 1e12, 255.5), NewVec3(255, 255, 255)},
		{"below range", NewVec3(-1, -1e12, -0.01), NewVec3(0, 0, 0)},
		{"mixed", NewVec3(-50, 100, 900), NewVec3(0, 100, 255)},
		{"infinities", NewVec3(math.Inf(1), math.Inf(-1), 3), NewVec3(255, 0, 3)},
		{"nan", NewVec3(math.NaN(), 5, 5), NewVec3(0, 5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.ClampColor()
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			for _, c := range []float64{result.X, result.Y, result.Z} {
				if c < 0 || c > 255 {
					t.Errorf("Channel %f outside [0,255]", c)
				}
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	if p := ray.At(3); p != NewVec3(0, 0, 3) {
		t.Errorf("Expected (0,0,3), got %v", p)
	}
}
