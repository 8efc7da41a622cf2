package optimize

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// Batch is the subset of the dataset used for one optimizer step.
type Batch struct {
	X       *mat.Dense
	Y       *mat.VecDense
	Indices []int // rows of the full dataset, in sampled order
}

// Len returns the number of samples in the batch.
func (b Batch) Len() int {
	return len(b.Indices)
}

// Gather copies the given rows of X and y into a new Batch. The inputs are not
// modified.
func Gather(X mat.Matrix, y mat.Vector, indices []int) (Batch, error) {
	rows, cols := X.Dims()
	if y.Len() != rows {
		return Batch{}, errors.NewDimensionError("optimize.Gather", rows, y.Len(), 0)
	}
	bx := mat.NewDense(len(indices), cols, nil)
	by := mat.NewVecDense(len(indices), nil)
	row := make([]float64, cols)
	for i, idx := range indices {
		if idx < 0 || idx >= rows {
			return Batch{}, errors.NewValueError("optimize.Gather", "sample index out of range")
		}
		mat.Row(row, idx, X)
		bx.SetRow(i, row)
		by.SetVec(i, y.AtVec(idx))
	}
	idx := make([]int, len(indices))
	copy(idx, indices)
	return Batch{X: bx, Y: by, Indices: idx}, nil
}
