package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.1, 1e-8), test.ShouldBeFalse)
	test.That(t, Float64sAlmostEqual([]float64{1, 2}, []float64{1, 2 + 1e-10}, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64sAlmostEqual([]float64{1}, []float64{1, 2}, 1e-8), test.ShouldBeFalse)
	test.That(t, Square(3), test.ShouldEqual, 9.)
}
