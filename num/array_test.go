package num

import (
	"errors"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/dual"
)

func TestConstructors(t *testing.T) {
	a := New([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	test.That(t, a.Kind(), test.ShouldEqual, Float64)
	test.That(t, a.Shape(), test.ShouldResemble, []int{2, 3})
	test.That(t, a.Len(), test.ShouldEqual, 6)
	test.That(t, a.Dim(-1), test.ShouldEqual, 3)
	test.That(t, a.Derivs(), test.ShouldBeNil)

	d := NewDual([]int{3}, []float64{1, 2, 3}, []float64{0.5, 0, -1})
	test.That(t, d.Kind(), test.ShouldEqual, Dual)
	test.That(t, d.At(0), test.ShouldResemble, dual.Number{Real: 1, Emag: 0.5})

	z := Zeros(Dual, 2, 2)
	test.That(t, z.Len(), test.ShouldEqual, 4)
	test.That(t, z.Derivs(), test.ShouldNotBeNil)

	f := Full(Float64, 7, 3)
	test.That(t, f.Values(), test.ShouldResemble, []float64{7, 7, 7})
}

func TestConstructorPanics(t *testing.T) {
	test.That(t, func() { New([]int{2, 2}, []float64{1}) }, test.ShouldPanic)
	test.That(t, func() { NewDual([]int{2}, []float64{1, 2}, []float64{1}) }, test.ShouldPanic)
	test.That(t, func() { New([]int{3}, []float64{1, 2, 3}).Reshape(2, 2) }, test.ShouldPanic)
	test.That(t, func() { Zeros(Kind(7), 2) }, test.ShouldPanic)
}

func TestSetDiscardsDerivativeOnFloat64(t *testing.T) {
	a := Zeros(Float64, 2)
	a.Set(0, dual.Number{Real: 3, Emag: 9})
	test.That(t, a.Values()[0], test.ShouldEqual, 3.)
	test.That(t, a.At(0).Emag, test.ShouldEqual, 0.)

	d := Zeros(Dual, 2)
	d.Set(0, dual.Number{Real: 3, Emag: 9})
	test.That(t, d.At(0).Emag, test.ShouldEqual, 9.)
}

func TestCloneIsDeep(t *testing.T) {
	a := NewDual([]int{2}, []float64{1, 2}, []float64{3, 4})
	b := a.Clone()
	b.Set(0, dual.Number{Real: -1, Emag: -1})
	test.That(t, a.Values()[0], test.ShouldEqual, 1.)
	test.That(t, a.Derivs()[0], test.ShouldEqual, 3.)
}

func TestReshapeSharesData(t *testing.T) {
	a := New([]int{2, 2}, []float64{1, 2, 3, 4})
	b := a.Reshape(4)
	b.Set(3, dual.Number{Real: 9})
	test.That(t, a.Values()[3], test.ShouldEqual, 9.)
	test.That(t, b.Shape(), test.ShouldResemble, []int{4})
}

func TestSameKind(t *testing.T) {
	f1 := Zeros(Float64, 2)
	f2 := Zeros(Float64, 3)
	d1 := Zeros(Dual, 2)

	k, err := SameKind(f1, f2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, k, test.ShouldEqual, Float64)

	k, err = SameKind(d1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, k, test.ShouldEqual, Dual)

	_, err = SameKind(f1, d1)
	test.That(t, err, test.ShouldNotBeNil)
	var kindErr *ContainerKindError
	test.That(t, errors.As(err, &kindErr), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "mixed container kinds")
}

func TestMinMaxTieRule(t *testing.T) {
	a := dual.Number{Real: 1, Emag: 10}
	b := dual.Number{Real: 1, Emag: 20}
	test.That(t, Max(a, b).Emag, test.ShouldEqual, 10.)
	test.That(t, Min(a, b).Emag, test.ShouldEqual, 10.)
	test.That(t, Max(a, dual.Number{Real: 2}).Real, test.ShouldEqual, 2.)
	test.That(t, Min(a, dual.Number{Real: 0}).Real, test.ShouldEqual, 0.)
}

func TestHypot(t *testing.T) {
	h := Hypot(dual.Number{Real: 3, Emag: 1}, dual.Number{Real: 4})
	test.That(t, h.Real, test.ShouldAlmostEqual, 5.)
	// d/da sqrt(a²+b²) = a/hypot = 3/5
	test.That(t, h.Emag, test.ShouldAlmostEqual, 0.6)
}
