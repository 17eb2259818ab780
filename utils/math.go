// Package utils contains small numeric helpers shared by the geometry and
// collision packages and their tests.
package utils

import "math"

// Float64AlmostEqual returns whether two float64s are within epsilon of each
// other.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) <= epsilon
}

// Float64sAlmostEqual returns whether two equal-length slices are elementwise
// within epsilon of each other.
func Float64sAlmostEqual(s1, s2 []float64, epsilon float64) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i := range s1 {
		if !Float64AlmostEqual(s1[i], s2[i], epsilon) {
			return false
		}
	}
	return true
}

// Square is faster than math.Pow(x, 2).
func Square(n float64) float64 {
	return n * n
}
