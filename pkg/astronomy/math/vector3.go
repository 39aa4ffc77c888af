package math

import "math"

// Vector3 is a position in the sky frame of the primary. X and Y span the
// plane of the sky, Z points along the line of sight towards the observer.
type Vector3 struct {
	X, Y, Z float64
}

// SkyDistance returns the length of the projection onto the plane of the sky.
func (v Vector3) SkyDistance() float64 {
	return math.Hypot(v.X, v.Y)
}

// InFront reports whether the point lies between the primary and the observer.
func (v Vector3) InFront() bool {
	return v.Z > 0
}

// Behind reports whether the point lies on the far side of the primary.
func (v Vector3) Behind() bool {
	return v.Z < 0
}
