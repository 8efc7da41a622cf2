package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

func TestAddDummyFeature(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		3, 4,
		5, 6,
	})

	out := AddDummyFeature(X, 1.0)
	r, c := out.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{1, 3, 4}, out.RawRowView(0))
	assert.Equal(t, []float64{1, 5, 6}, out.RawRowView(1))

	out.Set(0, 1, 100)
	assert.Equal(t, 3.0, X.At(0, 0), "input must not be modified")
}

func TestPolynomialFeatures(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{
		2, 3,
		1, -1,
	})

	out, err := PolynomialFeatures(X, 2)
	require.NoError(t, err)

	// a, b, a², ab, b²
	assert.Equal(t, []float64{2, 3, 4, 6, 9}, out.RawRowView(0))
	assert.Equal(t, []float64{1, -1, 1, -1, 1}, out.RawRowView(1))
}

func TestPolynomialFeaturesSingleColumn(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{2})
	out, err := PolynomialFeatures(X, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 8, 16, 32}, out.RawRowView(0))
}

func TestPolynomialFeaturesColumnCount(t *testing.T) {
	// sum over k=1..3 of C(3+k-1, k) = 3 + 6 + 10
	out, err := PolynomialFeatures(mat.NewDense(1, 3, []float64{1, 1, 1}), 3)
	require.NoError(t, err)
	_, c := out.Dims()
	assert.Equal(t, 19, c)

	_, err = PolynomialFeatures(mat.NewDense(1, 3, nil), 0)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}
