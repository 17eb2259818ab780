package geometry

import (
	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// Ordered list of footprint corner signs, prior to rotation.
var cornerSigns = [4][2]float64{
	{-1, -1},
	{-1, 1},
	{1, 1},
	{1, -1},
}

// BoxCorners returns the four world-frame corners of an oriented rectangular
// footprint: pos [...,2], yaw [...,1], extent [...,2] -> corners [...,4,2].
// The unit-square corners ±0.5 are scaled by extent in the fixed order
// (−,−),(−,+),(+,+),(+,−), rotated by yaw via right-multiplication with
// [[cos,sin],[−sin,cos]], then translated by pos.
func BoxCorners(pos, yaw, extent *num.Array) (*num.Array, error) {
	kind, err := num.SameKind(pos, yaw, extent)
	if err != nil {
		return nil, err
	}
	batchShape, err := footprintBatch(pos, yaw, extent)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	out := num.Zeros(kind, append(batchShape, 4, 2)...)
	for b := 0; b < batch; b++ {
		s := dual.Sin(yaw.At(b))
		c := dual.Cos(yaw.At(b))
		px, py := pos.At(b*2), pos.At(b*2+1)
		ex, ey := extent.At(b*2), extent.At(b*2+1)
		for k, sgn := range cornerSigns {
			cx := dual.Scale(0.5*sgn[0], ex)
			cy := dual.Scale(0.5*sgn[1], ey)
			wx := dual.Add(dual.Sub(dual.Mul(cx, c), dual.Mul(cy, s)), px)
			wy := dual.Add(dual.Add(dual.Mul(cx, s), dual.Mul(cy, c)), py)
			off := (b*4 + k) * 2
			out.Set(off, wx)
			out.Set(off+1, wy)
		}
	}
	return out, nil
}

// UprightBox returns the axis-aligned bounding proxy of a footprint as its
// two diagonally opposite corners: pos [...,2], extent [...,2] ->
// box [...,2,2], holding the (−,−) and (+,+) corners of the yaw-0 footprint.
func UprightBox(pos, extent *num.Array) (*num.Array, error) {
	kind, err := num.SameKind(pos, extent)
	if err != nil {
		return nil, err
	}
	pShape := pos.Shape()
	if len(pShape) < 1 {
		return nil, num.NewShapeErrorf("pos must have a trailing xy axis, got %v", pShape)
	}
	batchShape := pShape[:len(pShape)-1]
	yaw := num.Zeros(kind, append(append([]int(nil), batchShape...), 1)...)
	corners, err := BoxCorners(pos, yaw, extent)
	if err != nil {
		return nil, err
	}
	batch := num.Numel(batchShape)
	out := num.Zeros(kind, append(append([]int(nil), batchShape...), 2, 2)...)
	for b := 0; b < batch; b++ {
		// corners 0 and 2 of the fixed order: (−,−) and (+,+)
		out.Set(b*4, corners.At(b*8))
		out.Set(b*4+1, corners.At(b*8+1))
		out.Set(b*4+2, corners.At(b*8+4))
		out.Set(b*4+3, corners.At(b*8+5))
	}
	return out, nil
}

// footprintBatch validates the trailing axes of a footprint triple and
// returns the shared batch shape.
func footprintBatch(pos, yaw, extent *num.Array) ([]int, error) {
	pShape, yShape, eShape := pos.Shape(), yaw.Shape(), extent.Shape()
	if len(pShape) < 1 || pShape[len(pShape)-1] != 2 {
		return nil, num.NewShapeErrorf("pos must end in an xy axis of size 2: pos %v", pShape)
	}
	if len(yShape) < 1 || yShape[len(yShape)-1] != 1 {
		return nil, num.NewShapeErrorf("yaw must end in a singleton axis: yaw %v, pos %v", yShape, pShape)
	}
	if len(eShape) < 1 || eShape[len(eShape)-1] != 2 {
		return nil, num.NewShapeErrorf("extent must end in an axis of size 2: extent %v, pos %v", eShape, pShape)
	}
	batch := pShape[:len(pShape)-1]
	if !sameDims(batch, yShape[:len(yShape)-1]) || !sameDims(batch, eShape[:len(eShape)-1]) {
		return nil, num.NewShapeErrorf("batch dimensions must match: pos %v, yaw %v, extent %v", pShape, yShape, eShape)
	}
	return batch, nil
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, d := range a {
		if b[i] != d {
			return false
		}
	}
	return true
}
