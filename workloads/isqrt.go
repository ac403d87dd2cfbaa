package workloads

import (
	"math"
	"runtime"
)

// Vec3 is a point or direction in 3D space.
type Vec3 [3]float32

// Normalize scales v to unit length the naive way: one square root and three
// divisions. The zero vector is returned unchanged.
func Normalize(v Vec3) Vec3 {
	hypot := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if hypot == 0 {
		return v
	}
	root := float32(math.Sqrt(float64(hypot)))
	return Vec3{v[0] / root, v[1] / root, v[2] / root}
}

const isqrtSteps = 64

// NaiveISqrt normalizes a vector that walks through space in steps whose
// components share no common factor and differ in sign.
func NaiveISqrt() {
	v := Vec3{0.1, 0.1, 0.1}
	delta := Vec3{-0.1, 0.3, 0.5}
	var n Vec3
	for range isqrtSteps {
		n = Normalize(v)
		for i := range v {
			v[i] += delta[i]
		}
	}
	runtime.KeepAlive(n)
}
