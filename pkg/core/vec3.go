package core

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 represents a 3D vector. It is used for positions, directions and
// colors with channels scaled to [0, 255].
type Vec3 r3.Vec

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vec { return r3.Vec(v) }

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(v.r3(), other.r3()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(r3.Sub(v.r3(), other.r3()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(r3.Scale(scalar, v.r3()))
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(v.r3(), other.r3()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return r3.Norm(v.r3())
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return r3.Norm2(v.r3())
}

// Normalize returns a unit vector in the same direction.
// A zero-length vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	if v.Length() == 0 {
		return v
	}
	return Vec3(r3.Unit(v.r3()))
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// IsZero reports whether all components are exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
