package core

import (
	"testing"
)

func TestMat3_MultiplyVec(t *testing.T) {
	tests := []struct {
		name     string
		matrix   Mat3
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "identity",
			matrix:   Identity3(),
			vector:   NewVec3(1, 2, 3),
			expected: NewVec3(1, 2, 3),
		},
		{
			name:     "row major",
			matrix:   Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
			vector:   NewVec3(1, 0, -1),
			expected: NewVec3(-2, -2, -2),
		},
		{
			name:     "90 degrees around Y",
			matrix:   RotationY(90),
			vector:   NewVec3(0, 0, 1),
			expected: NewVec3(-1, 0, 0),
		},
		{
			name:     "zero rotation",
			matrix:   RotationY(0),
			vector:   NewVec3(0.5, -0.25, 1),
			expected: NewVec3(0.5, -0.25, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.matrix.MultiplyVec(tt.vector)

			const tolerance = 1e-9
			if !result.Equals(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMat3_IsZero(t *testing.T) {
	var m Mat3
	if !m.IsZero() {
		t.Error("Expected zero value to be zero")
	}
	if Identity3().IsZero() {
		t.Error("Expected identity to be non-zero")
	}
}
