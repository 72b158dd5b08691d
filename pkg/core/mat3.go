package core

import "math"

// Mat3 is a row-major 3x3 matrix
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotationY returns a matrix rotating by the given angle (degrees) around the Y axis
func RotationY(degrees float64) Mat3 {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return Mat3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// MultiplyVec multiplies the matrix by a column vector: result[i] = sum_j m[i][j]*v[j]
func (m Mat3) MultiplyVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// IsZero reports whether every entry is zero (the zero value of Mat3)
func (m Mat3) IsZero() bool {
	return m == Mat3{}
}
