// Package geometry provides batched planar primitives for motion planning:
// angle normalization, affine point transforms, oriented footprint corners,
// reference-path (Frenet) projection, and arc-length lane interpolation.
//
// Every function operates on num.Array containers and preserves the
// container kind of its inputs. Degenerate numeric inputs (zero-length
// polyline segments, zero extents) are deliberately unguarded; callers must
// pre-validate.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// NormalizeAngle wraps x into the principal interval via ((x+π) mod 2π) − π.
// The result lies in [−π, π); inputs at the ±π boundary land on −π, a
// floating tie that is accepted rather than adjusted.
func NormalizeAngle(x float64) float64 {
	m := math.Mod(x+math.Pi, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m - math.Pi
}

// normalizeElem wraps a dual angle. Wrapping is a constant shift almost
// everywhere, so the derivative passes through unchanged.
func normalizeElem(x dual.Number) dual.Number {
	return dual.Number{Real: NormalizeAngle(x.Real), Emag: x.Emag}
}

// NormalizeAngles applies NormalizeAngle elementwise, preserving the
// container kind and shape.
func NormalizeAngles(a *num.Array) *num.Array {
	out := num.Zeros(a.Kind(), a.Shape()...)
	for i := 0; i < a.Len(); i++ {
		out.Set(i, normalizeElem(a.At(i)))
	}
	return out
}
