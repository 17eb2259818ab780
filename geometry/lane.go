package geometry

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/zzz5y/pplan/num"
)

// Lane is an arc-length parameterized interpolant over a reference line.
// Inside the fitted range channels interpolate piecewise-linearly; beyond
// either end they extrapolate linearly along the boundary segment.
type Lane struct {
	s      []float64
	chans  []interp.PiecewiseLinear
	cols   [][]float64
	origin []float64
}

// FitLane fits a Lane to a rank-2 reference line [N,C] with C >= 2; the
// first two channels are the xy coordinates used to accumulate arc length,
// and every channel (coordinates and heading included) becomes queryable by
// arc length. The arc-length parameter starts at 0 and is non-decreasing;
// duplicate consecutive waypoints make it non-strict and fail the fit.
// Fitting reads immediate values only.
func FitLane(line *num.Array) (*Lane, error) {
	shape := line.Shape()
	if len(shape) != 2 || shape[1] < 2 {
		return nil, num.NewShapeErrorf("lane must be [N,C] with C >= 2, got %v", shape)
	}
	n, c := shape[0], shape[1]
	if n < 2 {
		return nil, num.NewShapeErrorf("a lane needs at least 2 waypoints, got %v", shape)
	}
	vals := line.Values()

	incs := make([]float64, n)
	for i := 1; i < n; i++ {
		incs[i] = math.Hypot(vals[i*c]-vals[(i-1)*c], vals[i*c+1]-vals[(i-1)*c+1])
	}
	s := make([]float64, n)
	floats.CumSum(s, incs)

	l := &Lane{
		s:      s,
		chans:  make([]interp.PiecewiseLinear, c),
		cols:   make([][]float64, c),
		origin: append([]float64(nil), vals[:c]...),
	}
	for j := 0; j < c; j++ {
		col := make([]float64, n)
		for i := 0; i < n; i++ {
			col[i] = vals[i*c+j]
		}
		if err := l.chans[j].Fit(s, col); err != nil {
			return nil, errors.Wrapf(err, "fitting lane channel %d", j)
		}
		l.cols[j] = col
	}
	return l, nil
}

// At evaluates every channel at arc length s, extrapolating beyond the
// fitted range.
func (l *Lane) At(s float64) []float64 {
	out := make([]float64, len(l.chans))
	n := len(l.s)
	for j := range l.chans {
		switch {
		case s < l.s[0]:
			slope := (l.cols[j][1] - l.cols[j][0]) / (l.s[1] - l.s[0])
			out[j] = l.cols[j][0] + slope*(s-l.s[0])
		case s > l.s[n-1]:
			slope := (l.cols[j][n-1] - l.cols[j][n-2]) / (l.s[n-1] - l.s[n-2])
			out[j] = l.cols[j][n-1] + slope*(s-l.s[n-1])
		default:
			out[j] = l.chans[j].Predict(s)
		}
	}
	return out
}

// Origin returns the first waypoint row of the fitted line.
func (l *Lane) Origin() []float64 {
	return append([]float64(nil), l.origin...)
}
