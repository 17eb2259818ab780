package geometry

import (
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"

	"github.com/zzz5y/pplan/num"
)

func TestFitLaneReproducesWaypoints(t *testing.T) {
	pts := []r2.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 9}}
	headings := []float64{0.9, 0.6, 0.2}
	line, err := Polyline(pts, headings)
	test.That(t, err, test.ShouldBeNil)

	lane, err := FitLane(line)
	test.That(t, err, test.ShouldBeNil)

	// arc lengths 0, 5, 10 along the two segments
	arcs := []float64{0, 5, 10}
	for i, s := range arcs {
		got := lane.At(s)
		test.That(t, got[0], test.ShouldAlmostEqual, pts[i].X, 1e-9)
		test.That(t, got[1], test.ShouldAlmostEqual, pts[i].Y, 1e-9)
		test.That(t, got[2], test.ShouldAlmostEqual, headings[i], 1e-9)
	}

	// midway through the second segment
	mid := lane.At(7.5)
	test.That(t, mid[0], test.ShouldAlmostEqual, 3, 1e-9)
	test.That(t, mid[1], test.ShouldAlmostEqual, 6.5, 1e-9)

	test.That(t, lane.Origin(), test.ShouldResemble, []float64{0, 0, 0.9})
}

func TestFitLaneExtrapolates(t *testing.T) {
	line, err := Polyline([]r2.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, []float64{0, 0})
	test.That(t, err, test.ShouldBeNil)
	lane, err := FitLane(line)
	test.That(t, err, test.ShouldBeNil)

	before := lane.At(-2)
	test.That(t, before[0], test.ShouldAlmostEqual, -2, 1e-9)
	test.That(t, before[1], test.ShouldAlmostEqual, 0, 1e-9)

	after := lane.At(13)
	test.That(t, after[0], test.ShouldAlmostEqual, 13, 1e-9)
	test.That(t, after[1], test.ShouldAlmostEqual, 0, 1e-9)
}

func TestFitLaneErrors(t *testing.T) {
	_, err := FitLane(num.New([]int{3}, []float64{1, 2, 3}))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FitLane(num.New([]int{1, 3}, []float64{1, 2, 3}))
	test.That(t, err, test.ShouldNotBeNil)

	// duplicate consecutive waypoints collapse the arc-length parameter
	dup := num.New([]int{3, 3}, []float64{0, 0, 0, 0, 0, 0, 1, 0, 0})
	_, err = FitLane(dup)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "lane channel")
}
