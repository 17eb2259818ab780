package geometry

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/zzz5y/pplan/num"
	"github.com/zzz5y/pplan/utils"
)

func TestBoxCornersAxisAligned(t *testing.T) {
	pos := num.New([]int{1, 2}, []float64{10, 20})
	yaw := num.New([]int{1, 1}, []float64{0})
	extent := num.New([]int{1, 2}, []float64{4, 2})

	corners, err := BoxCorners(pos, yaw, extent)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, corners.Shape(), test.ShouldResemble, []int{1, 4, 2})

	// fixed order (−,−),(−,+),(+,+),(+,−) around (10,20)
	expected := []float64{8, 19, 8, 21, 12, 21, 12, 19}
	test.That(t, utils.Float64sAlmostEqual(corners.Values(), expected, 1e-12), test.ShouldBeTrue)
}

func TestBoxCornersRotated(t *testing.T) {
	pos := num.New([]int{1, 2}, []float64{0, 0})
	yaw := num.New([]int{1, 1}, []float64{math.Pi / 2})
	extent := num.New([]int{1, 2}, []float64{4, 2})

	corners, err := BoxCorners(pos, yaw, extent)
	test.That(t, err, test.ShouldBeNil)
	// a quarter turn maps (−2,−1) to (1,−2), and so on around the box
	expected := []float64{1, -2, -1, -2, -1, 2, 1, 2}
	test.That(t, utils.Float64sAlmostEqual(corners.Values(), expected, 1e-12), test.ShouldBeTrue)
}

func TestUprightBox(t *testing.T) {
	pos := num.New([]int{2, 2}, []float64{0, 0, 5, 5})
	extent := num.New([]int{2, 2}, []float64{2, 2, 4, 2})

	box, err := UprightBox(pos, extent)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, box.Shape(), test.ShouldResemble, []int{2, 2, 2})

	expected := []float64{
		-1, -1, 1, 1, // first box: (−,−) then (+,+)
		3, 4, 7, 6,
	}
	for i, e := range expected {
		test.That(t, box.Values()[i], test.ShouldAlmostEqual, e, 1e-12)
	}
}

func TestBoxCornersShapeErrors(t *testing.T) {
	pos := num.New([]int{1, 2}, []float64{0, 0})
	yaw := num.New([]int{1, 1}, []float64{0})
	extent := num.New([]int{1, 2}, []float64{1, 1})

	_, err := BoxCorners(num.New([]int{1, 3}, []float64{0, 0, 0}), yaw, extent)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = BoxCorners(pos, num.New([]int{1, 2}, []float64{0, 0}), extent)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = BoxCorners(pos, yaw, num.New([]int{2, 2}, []float64{1, 1, 1, 1}))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBoxCornersDualMatchesFloat(t *testing.T) {
	posVals := []float64{1.5, -2}
	yawVals := []float64{0.7}
	extVals := []float64{4.2, 1.8}

	f, err := BoxCorners(
		num.New([]int{1, 2}, append([]float64(nil), posVals...)),
		num.New([]int{1, 1}, append([]float64(nil), yawVals...)),
		num.New([]int{1, 2}, append([]float64(nil), extVals...)),
	)
	test.That(t, err, test.ShouldBeNil)

	d, err := BoxCorners(
		num.NewDual([]int{1, 2}, append([]float64(nil), posVals...), nil),
		num.NewDual([]int{1, 1}, append([]float64(nil), yawVals...), nil),
		num.NewDual([]int{1, 2}, append([]float64(nil), extVals...), nil),
	)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.Kind(), test.ShouldEqual, num.Dual)
	test.That(t, d.Values(), test.ShouldResemble, f.Values())
}
