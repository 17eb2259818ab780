package geometry

import (
	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// Projection holds path-frame offsets produced by Project. DS and DN give
// the longitudinal and lateral offset of the query pose relative to every
// waypoint, all expressed in the frame of the nearest waypoint; DYaw is the
// heading deviation from that waypoint, normalized into the principal
// interval.
type Projection struct {
	DS   *num.Array // [...,N]
	DN   *num.Array // [...,N]
	DYaw *num.Array // [...,1]
}

// Project projects a pose onto a piecewise-linear reference line:
// pose [...,3] (x, y, heading), line [...,N,3] with matching batch
// dimensions (elementwise pairing, no cross product).
//
// For each batch element the nearest waypoint by Euclidean distance is
// selected (ties keep the lowest index), its heading is taken as the local
// path direction, and the world-frame deltas to every waypoint are rotated
// into that frame. Zero-length polyline segments are not guarded; callers
// must pre-validate.
func Project(pose, line *num.Array) (*Projection, error) {
	kind, batchShape, n, err := projectionShapes(pose, line)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	ds := num.Zeros(kind, append(append([]int(nil), batchShape...), n)...)
	dn := num.Zeros(kind, append(append([]int(nil), batchShape...), n)...)
	dyaw := num.Zeros(kind, append(append([]int(nil), batchShape...), 1)...)
	for b := 0; b < batch; b++ {
		idx := nearestWaypoint(pose, line, b, n)
		theta := line.At((b*n+idx)*3 + 2)
		s, c := dual.Sin(theta), dual.Cos(theta)
		px, py := pose.At(b*3), pose.At(b*3+1)
		for p := 0; p < n; p++ {
			dx := dual.Sub(px, line.At((b*n+p)*3))
			dy := dual.Sub(py, line.At((b*n+p)*3+1))
			ds.Set(b*n+p, dual.Add(dual.Mul(dx, c), dual.Mul(dy, s)))
			dn.Set(b*n+p, dual.Sub(dual.Mul(dy, c), dual.Mul(dx, s)))
		}
		dyaw.Set(b, normalizeElem(dual.Sub(pose.At(b*3+2), theta)))
	}
	return &Projection{DS: ds, DN: dn, DYaw: dyaw}, nil
}

// ProjectNearest returns the path-frame offsets of the pose relative to the
// nearest waypoint only: ds and dn have the batch shape, dyaw carries an
// added trailing singleton dimension. A pose lying exactly on a waypoint
// yields ds = dn = 0.
func ProjectNearest(pose, line *num.Array) (ds, dn, dyaw *num.Array, err error) {
	kind, batchShape, n, err := projectionShapes(pose, line)
	if err != nil {
		return nil, nil, nil, err
	}
	batch := num.Numel(batchShape)
	ds = num.Zeros(kind, batchShape...)
	dn = num.Zeros(kind, batchShape...)
	dyaw = num.Zeros(kind, append(append([]int(nil), batchShape...), 1)...)
	for b := 0; b < batch; b++ {
		idx := nearestWaypoint(pose, line, b, n)
		theta := line.At((b*n+idx)*3 + 2)
		s, c := dual.Sin(theta), dual.Cos(theta)
		dx := dual.Sub(pose.At(b*3), line.At((b*n+idx)*3))
		dy := dual.Sub(pose.At(b*3+1), line.At((b*n+idx)*3+1))
		ds.Set(b, dual.Add(dual.Mul(dx, c), dual.Mul(dy, s)))
		dn.Set(b, dual.Sub(dual.Mul(dy, c), dual.Mul(dx, s)))
		dyaw.Set(b, normalizeElem(dual.Sub(pose.At(b*3+2), theta)))
	}
	return ds, dn, dyaw, nil
}

// ProjectRef is Project extended with the reference pose used by callers
// that need a point on the path: the nearest waypoint advanced along its own
// tangent by the pose's longitudinal offset, shape [...,3]. Its heading is
// the waypoint heading.
func ProjectRef(pose, line *num.Array) (*Projection, *num.Array, error) {
	proj, err := Project(pose, line)
	if err != nil {
		return nil, nil, err
	}
	_, batchShape, n, err := projectionShapes(pose, line)
	if err != nil {
		return nil, nil, err
	}
	batch := num.Numel(batchShape)
	ref := num.Zeros(proj.DS.Kind(), append(append([]int(nil), batchShape...), 3)...)
	for b := 0; b < batch; b++ {
		idx := nearestWaypoint(pose, line, b, n)
		theta := line.At((b*n+idx)*3 + 2)
		s, c := dual.Sin(theta), dual.Cos(theta)
		along := proj.DS.At(b*n + idx)
		ref.Set(b*3, dual.Add(line.At((b*n+idx)*3), dual.Mul(along, c)))
		ref.Set(b*3+1, dual.Add(line.At((b*n+idx)*3+1), dual.Mul(along, s)))
		ref.Set(b*3+2, theta)
	}
	return proj, ref, nil
}

// Polyline builds a Float64 reference line of shape [N,3] from waypoints and
// per-waypoint headings. A reference line needs at least two waypoints and
// no duplicate consecutive points.
func Polyline(points []r2.Point, headings []float64) (*num.Array, error) {
	if len(points) != len(headings) {
		return nil, num.NewShapeErrorf("got %d waypoints but %d headings", len(points), len(headings))
	}
	if len(points) < 2 {
		return nil, num.NewShapeErrorf("a reference line needs at least 2 waypoints, got %d", len(points))
	}
	vals := make([]float64, 0, len(points)*3)
	for i, pt := range points {
		vals = append(vals, pt.X, pt.Y, headings[i])
	}
	return num.New([]int{len(points), 3}, vals), nil
}

// nearestWaypoint scans the b-th reference line for the waypoint closest to
// the b-th pose. Squared distances preserve the argmin; a strict comparison
// keeps the lowest index on ties.
func nearestWaypoint(pose, line *num.Array, b, n int) int {
	pv, lv := pose.Values(), line.Values()
	px, py := pv[b*3], pv[b*3+1]
	best, bestIdx := 0.0, 0
	for p := 0; p < n; p++ {
		dx := px - lv[(b*n+p)*3]
		dy := py - lv[(b*n+p)*3+1]
		if d := dx*dx + dy*dy; p == 0 || d < best {
			best, bestIdx = d, p
		}
	}
	return bestIdx
}

// projectionShapes validates a pose/line pair and returns the shared kind,
// the batch shape, and the waypoint count.
func projectionShapes(pose, line *num.Array) (num.Kind, []int, int, error) {
	kind, err := num.SameKind(pose, line)
	if err != nil {
		return 0, nil, 0, err
	}
	pShape, lShape := pose.Shape(), line.Shape()
	if len(pShape) < 1 || pShape[len(pShape)-1] != 3 {
		return 0, nil, 0, num.NewShapeErrorf("pose must end in (x, y, heading): pose %v, line %v", pShape, lShape)
	}
	if len(lShape) != len(pShape)+1 || lShape[len(lShape)-1] != 3 {
		return 0, nil, 0, num.NewShapeErrorf("line must be pose batch × [N,3]: pose %v, line %v", pShape, lShape)
	}
	n := lShape[len(lShape)-2]
	if n < 2 {
		return 0, nil, 0, num.NewShapeErrorf("a reference line needs at least 2 waypoints: line %v", lShape)
	}
	batch := pShape[:len(pShape)-1]
	if !sameDims(batch, lShape[:len(lShape)-2]) {
		return 0, nil, 0, num.NewShapeErrorf("pose and line batch dimensions must match elementwise: pose %v, line %v", pShape, lShape)
	}
	return kind, batch, n, nil
}
