package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestRegressionMetrics(t *testing.T) {
	tests := []struct {
		name   string
		metric func(yTrue, yPred mat.Vector) (float64, error)
		yTrue  *mat.VecDense
		yPred  *mat.VecDense
		want   float64
	}{
		{"MSE perfect", MSE, vec(1, 2, 3, 4, 5), vec(1, 2, 3, 4, 5), 0},
		{"MSE simple", MSE, vec(1, 2, 3, 4), vec(1.5, 2.5, 2.5, 3.5), 0.25},
		{"MSE larger errors", MSE, vec(10, 20, 30), vec(12, 18, 33), 17.0 / 3.0},
		{"RMSE", RMSE, vec(10, 20, 30), vec(12, 18, 33), math.Sqrt(17.0 / 3.0)},
		{"MAE", MAE, vec(10, 20, 30), vec(12, 18, 33), 7.0 / 3.0},
		{"R2 perfect", R2Score, vec(1, 2, 3), vec(1, 2, 3), 1},
		{"R2 mean predictor", R2Score, vec(1, 2, 3), vec(2, 2, 2), 0},
		{"R2 partial", R2Score, vec(3, -0.5, 2, 7), vec(2.5, 0.0, 2, 8), 0.9486081370449679},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRegressionMetricsErrors(t *testing.T) {
	for name, metric := range map[string]func(yTrue, yPred mat.Vector) (float64, error){
		"MSE": MSE, "RMSE": RMSE, "MAE": MAE, "R2Score": R2Score,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := metric(vec(1, 2, 3), vec(1, 2))
			assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))

			_, err = metric(&mat.VecDense{}, &mat.VecDense{})
			assert.Error(t, err)
		})
	}

	_, err := R2Score(vec(4, 4, 4), vec(1, 2, 3))
	var valueErr *errors.ValueError
	assert.True(t, errors.As(err, &valueErr))
}

func TestMatrixVariants(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	yPred := mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5})

	mse, err := MSEMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, mse, 1e-12)

	r2, err := R2ScoreMatrix(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, r2, 1e-12)

	_, err = MSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}

func BenchmarkMSE(b *testing.B) {
	n := 10000
	yTrue := mat.NewVecDense(n, nil)
	yPred := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
