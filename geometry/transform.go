package geometry

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"

	"github.com/zzz5y/pplan/num"
)

// TransformPoints applies an affine transform to row-major batches of 2D/3D
// points. Three shape combinations are supported:
//
//	points [N,F],   matrix [F+1,F+1]    every point, one matrix
//	points [B,N,F], matrix [F+1,F+1]    the matrix broadcasts over the batch
//	points [B,N,F], matrix [B,F+1,F+1]  one matrix per batch element
//
// with F ∈ {2,3}. The output has the same shape and container kind as
// points. Each point is right-multiplied by the transpose of the matrix's
// top-left F×F block and shifted by the translation held in the last column
// of the top F rows; the matrix's own last row is never read. Any other
// shape combination returns a *num.ShapeError naming both shapes.
func TransformPoints(points, matrix *num.Array) (*num.Array, error) {
	kind, err := num.SameKind(points, matrix)
	if err != nil {
		return nil, err
	}
	pShape, mShape := points.Shape(), matrix.Shape()
	pRank, mRank := len(pShape), len(mShape)
	if pRank != 2 && pRank != 3 {
		return nil, num.NewShapeErrorf("points rank must be 2 or 3: points %v, matrix %v", pShape, mShape)
	}
	if mRank != 2 && mRank != 3 {
		return nil, num.NewShapeErrorf("matrix rank must be 2 or 3: points %v, matrix %v", pShape, mShape)
	}
	if pRank < mRank {
		return nil, num.NewShapeErrorf("points rank must be >= matrix rank: points %v, matrix %v", pShape, mShape)
	}
	f := pShape[pRank-1]
	if f != 2 && f != 3 {
		return nil, num.NewShapeErrorf("points must be 2D or 3D: points %v, matrix %v", pShape, mShape)
	}
	size := mShape[mRank-1]
	if mShape[mRank-2] != size {
		return nil, num.NewShapeErrorf("matrix must be square: points %v, matrix %v", pShape, mShape)
	}
	if size != 3 && size != 4 {
		return nil, num.NewShapeErrorf("matrix size must be 3 or 4: points %v, matrix %v", pShape, mShape)
	}
	if f != size-1 {
		return nil, num.NewShapeErrorf("points dimension must be one less than matrix size: points %v, matrix %v", pShape, mShape)
	}
	if pRank == 3 && mRank == 3 && pShape[0] != mShape[0] {
		return nil, num.NewShapeErrorf("per-batch matrices must match the point batch: points %v, matrix %v", pShape, mShape)
	}

	batch, n := 1, pShape[pRank-2]
	if pRank == 3 {
		batch = pShape[0]
	}
	out := num.Zeros(kind, pShape...)
	matStride := 0
	if mRank == 3 {
		matStride = size * size
	}
	for b := 0; b < batch; b++ {
		mOff := b * matStride
		for p := 0; p < n; p++ {
			pOff := (b*n + p) * f
			for i := 0; i < f; i++ {
				// translation from the last column of row i
				acc := matrix.At(mOff + i*size + f)
				for j := 0; j < f; j++ {
					acc = dual.Add(acc, dual.Mul(points.At(pOff+j), matrix.At(mOff+i*size+j)))
				}
				out.Set(pOff+i, acc)
			}
		}
	}
	return out, nil
}

// TransformMatrixFromDense converts a gonum 3×3 or 4×4 matrix into a rank-2
// Float64 transform usable by TransformPoints.
func TransformMatrixFromDense(m *mat.Dense) (*num.Array, error) {
	r, c := m.Dims()
	if r != c || (r != 3 && r != 4) {
		return nil, num.NewShapeErrorf("transform matrix must be square with size 3 or 4, got [%d %d]", r, c)
	}
	vals := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			vals[i*c+j] = m.At(i, j)
		}
	}
	return num.New([]int{r, c}, vals), nil
}
