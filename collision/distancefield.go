package collision

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// DistanceField marks a grid with an approximate Manhattan distance to the
// drivable area: roadFlag [...,W,H] with 1 for drivable cells and 0 for
// non-drivable cells (a strict 0/1 mask; any other value is undefined
// input), maxDis the saturation value. The result has the same shape and
// container kind, with every value in [0, maxDis].
//
// The field starts at 0 on drivable cells and maxDis elsewhere, then runs
// maxDis-1 iterations of four whole-array min-relaxation sweeps in a fixed
// order (shift down, up, right, left along the trailing two axes). Each
// sweep is evaluated against the array as left by the previous sweep, so
// propagation is order-sensitive and bounded by the iteration count rather
// than run to convergence. The sweep order and in-place update are part of
// the contract; this is an approximation, not an exact distance transform.
func DistanceField(roadFlag *num.Array, maxDis int) (*num.Array, error) {
	if maxDis < 1 {
		return nil, errors.Errorf("max distance must be at least 1, got %d", maxDis)
	}
	shape := roadFlag.Shape()
	if len(shape) < 2 {
		return nil, num.NewShapeErrorf("road flag must be at least rank 2, got %v", shape)
	}
	w, h := shape[len(shape)-2], shape[len(shape)-1]
	batch := num.Numel(shape[:len(shape)-2])

	out := num.Zeros(roadFlag.Kind(), shape...)
	flags := roadFlag.Values()
	for i, f := range flags {
		if f == 0 {
			out.Set(i, dual.Number{Real: float64(maxDis)})
		}
	}

	for b := 0; b < batch; b++ {
		plane := b * w * h
		for iter := 0; iter < maxDis-1; iter++ {
			// shift down: row i relaxes against row i-1
			sweep(out, plane, w, h, func(i, j int) (int, int, bool) { return i - 1, j, i >= 1 })
			// shift up: row i relaxes against row i+1
			sweep(out, plane, w, h, func(i, j int) (int, int, bool) { return i + 1, j, i < w-1 })
			// shift right: column j relaxes against column j-1
			sweep(out, plane, w, h, func(i, j int) (int, int, bool) { return i, j - 1, j >= 1 })
			// shift left: column j relaxes against column j+1
			sweep(out, plane, w, h, func(i, j int) (int, int, bool) { return i, j + 1, j < h-1 })
		}
	}
	return out, nil
}

// sweep applies one whole-array relaxation: every cell with an in-bounds
// neighbor takes the minimum of itself and that neighbor plus one. The
// neighbor values are read from a snapshot of the plane taken before the
// sweep, matching whole-tensor assignment semantics; successive sweeps see
// each other's updates.
func sweep(out *num.Array, plane, w, h int, neighbor func(i, j int) (int, int, bool)) {
	snap := make([]dual.Number, w*h)
	for idx := range snap {
		snap[idx] = out.At(plane + idx)
	}
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			ni, nj, ok := neighbor(i, j)
			if !ok {
				continue
			}
			idx := i*h + j
			relaxed := num.Min(snap[idx], num.AddConst(1, snap[ni*h+nj]))
			out.Set(plane+idx, relaxed)
		}
	}
}
