package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// AddDummyFeature returns a copy of X with a constant column of the given
// value prepended. Linear models use it to learn an intercept as weight 0.
func AddDummyFeature(X mat.Matrix, value float64) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, value)
	}
	out.Slice(0, r, 1, c+1).(*mat.Dense).Copy(X)
	return out
}

// PolynomialFeatures expands every row into all products of its features of
// degree 1 through degree, taken as combinations with replacement. For
// features (a, b) and degree 2 the columns are a, b, a², ab, b². No bias
// column is added; see AddDummyFeature.
func PolynomialFeatures(X mat.Matrix, degree int) (*mat.Dense, error) {
	if degree < 1 {
		return nil, errors.NewConfigurationError("degree", "must be at least 1", degree)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("PolynomialFeatures", "empty data", errors.ErrEmptyData)
	}

	var combos [][]int
	for d := 1; d <= degree; d++ {
		combos = appendCombinations(combos, nil, 0, c, d)
	}

	out := mat.NewDense(r, len(combos), nil)
	for i := 0; i < r; i++ {
		for k, combo := range combos {
			p := 1.0
			for _, j := range combo {
				p *= X.At(i, j)
			}
			out.Set(i, k, p)
		}
	}
	return out, nil
}

// appendCombinations appends every non-decreasing index sequence of the
// given length with values in [start, n), in lexicographic order.
func appendCombinations(dst [][]int, prefix []int, start, n, length int) [][]int {
	if len(prefix) == length {
		return append(dst, append([]int(nil), prefix...))
	}
	for j := start; j < n; j++ {
		dst = appendCombinations(dst, append(prefix, j), j, n, length)
	}
	return dst
}
