package math3d

import (
	"testing"
)

func BenchmarkEulerApply(b *testing.B) {
	e := NewEuler(V3(0.3, 0.5, 0.7))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = e.Apply(v)
	}
}

func BenchmarkNewEuler(b *testing.B) {
	angles := V3(0.3, 0.5, 0.7)

	for b.Loop() {
		_ = NewEuler(angles)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Dot(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}
