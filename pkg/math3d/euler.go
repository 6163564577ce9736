package math3d

import "math"

// Euler is a captured set of per-axis rotation angles.
//
// Sines and cosines are evaluated once in NewEuler so that every vertex
// rotated with the same Euler observes the same angles. Rotation is applied
// about X, then Y, then Z; reordering changes the result.
type Euler struct {
	Angles Vec3

	sx, cx float64
	sy, cy float64
	sz, cz float64
}

// NewEuler captures the rotation for the given angles (radians).
func NewEuler(angles Vec3) Euler {
	return Euler{
		Angles: angles,
		sx:     math.Sin(angles.X),
		cx:     math.Cos(angles.X),
		sy:     math.Sin(angles.Y),
		cy:     math.Cos(angles.Y),
		sz:     math.Sin(angles.Z),
		cz:     math.Cos(angles.Z),
	}
}

// Apply rotates v about X, then Y, then Z.
func (e Euler) Apply(v Vec3) Vec3 {
	return e.RotateZ(e.RotateY(e.RotateX(v)))
}

// RotateX rotates the (y, z) pair by the captured X angle.
func (e Euler) RotateX(v Vec3) Vec3 {
	return Vec3{
		X: v.X,
		Y: e.cx*v.Y + e.sx*v.Z,
		Z: -e.sx*v.Y + e.cx*v.Z,
	}
}

// RotateY rotates the (x, z) pair by the captured Y angle.
func (e Euler) RotateY(v Vec3) Vec3 {
	return Vec3{
		X: e.cy*v.X + e.sy*v.Z,
		Y: v.Y,
		Z: -e.sy*v.X + e.cy*v.Z,
	}
}

// RotateZ rotates the (x, y) pair by the captured Z angle.
func (e Euler) RotateZ(v Vec3) Vec3 {
	return Vec3{
		X: e.cz*v.X + e.sz*v.Y,
		Y: -e.sz*v.X + e.cz*v.Y,
		Z: v.Z,
	}
}
