package linear_model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/linear"
	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/pkg/log"
)

func lineData() (*mat.Dense, *mat.Dense) {
	return mat.NewDense(4, 1, []float64{0, 1, 2, 3}),
		mat.NewDense(4, 1, []float64{0, 2, 4, 6})
}

// planeData is y = 1 + 2a - b without noise.
func planeData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(6, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
		2, 1,
		1, 2,
	})
	y := mat.NewDense(6, 1, nil)
	for i := 0; i < 6; i++ {
		y.Set(i, 0, 1+2*X.At(i, 0)-X.At(i, 1))
	}
	return X, y
}

func TestLinearRegressionFitsLine(t *testing.T) {
	X, y := lineData()

	reg, err := NewLinearRegression(
		WithFitIntercept(false),
		WithLearningRate(0.1),
		WithTol(1e-6),
		WithMaxIter(1000),
		WithRandomState(2),
	).Fit(X, y)
	require.NoError(t, err)

	require.Len(t, reg.Weights(), 1)
	assert.InDelta(t, 2.0, reg.Weights()[0], 1e-2)
	assert.Equal(t, 0.0, reg.Intercept())
	assert.True(t, reg.Converged())
	assert.LessOrEqual(t, reg.NIter(), 1000)

	pred, err := reg.Predict(mat.NewDense(2, 1, []float64{10, -1}))
	require.NoError(t, err)
	assert.InDelta(t, 20.0, pred.At(0, 0), 0.1)
	assert.InDelta(t, -2.0, pred.At(1, 0), 0.01)
}

func TestLinearRegressionWeightDimension(t *testing.T) {
	X, y := planeData()

	for _, fitIntercept := range []bool{true, false} {
		reg, err := NewLinearRegression(
			WithFitIntercept(fitIntercept),
			WithLearningRate(0.05),
			WithMaxIter(50),
			WithRandomState(1),
		).Fit(X, y)
		require.NoError(t, err)

		want := 2
		if fitIntercept {
			want = 3
		}
		assert.Len(t, reg.Weights(), want, "fit_intercept=%t", fitIntercept)
		assert.Len(t, reg.Coef(), 2)
	}
}

func TestLinearRegressionFullBatchAndStochasticAgree(t *testing.T) {
	X, y := planeData()

	full, err := NewLinearRegression(
		WithLearningRate(0.1),
		WithTol(1e-10),
		WithMaxIter(5000),
		WithRandomState(3),
	).Fit(X, y)
	require.NoError(t, err)

	stochastic, err := NewLinearRegression(
		WithLearningRate(0.05),
		WithTol(1e-10),
		WithMaxIter(5000),
		WithBatchSize(1),
		WithRandomState(3),
	).Fit(X, y)
	require.NoError(t, err)

	a, b := full.Weights(), stochastic.Weights()
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	assert.Less(t, floats.Norm(diff, 2)/floats.Norm(a, 2), 0.05)

	assert.InDeltaSlice(t, []float64{1, 2, -1}, a, 1e-2)
	assert.InDelta(t, 1.0, full.Intercept(), 1e-2)
	assert.InDeltaSlice(t, []float64{2, -1}, full.Coef(), 1e-2)

	score, err := full.Score(X, y)
	require.NoError(t, err)
	assert.Greater(t, score, 0.999)
}

func TestLinearRegressionMatchesLeastSquares(t *testing.T) {
	X, y := planeData()
	noise := []float64{0.1, -0.2, 0.05, 0.15, -0.1, 0}
	for i, e := range noise {
		y.Set(i, 0, y.At(i, 0)+e)
	}

	exact, err := linear.NewLeastSquares().Fit(X, y)
	require.NoError(t, err)

	reg, err := NewLinearRegression(
		WithLearningRate(0.1),
		WithTol(1e-12),
		WithMaxIter(20000),
		WithRandomState(5),
	).Fit(X, y)
	require.NoError(t, err)
	require.True(t, reg.Converged())

	assert.InDeltaSlice(t, exact.Weights(), reg.Weights(), 1e-3)
}

func TestLinearRegressionDeterministic(t *testing.T) {
	X, y := planeData()
	newModel := func() *LinearRegression {
		return NewLinearRegression(WithBatchSize(2), WithLearningRate(0.05), WithRandomState(7))
	}

	a, err := newModel().Fit(X, y)
	require.NoError(t, err)
	b, err := newModel().Fit(X, y)
	require.NoError(t, err)
	assert.Equal(t, a.Weights(), b.Weights())
	assert.Equal(t, a.NIter(), b.NIter())

	ta, err := newModel().FitTrajectory(X, y)
	require.NoError(t, err)
	tb, err := newModel().FitTrajectory(X, y)
	require.NoError(t, err)
	ea, err := ta.Collect()
	require.NoError(t, err)
	eb, err := tb.Collect()
	require.NoError(t, err)
	assert.Equal(t, ea, eb)
}

func TestLinearRegressionTrajectory(t *testing.T) {
	X, y := planeData()
	reg := NewLinearRegression(WithLearningRate(0.1), WithTol(1e-8), WithRandomState(4))

	traj, err := reg.FitTrajectory(X, y)
	require.NoError(t, err)

	var entries []optimize.Entry
	for e, err := range traj.All() {
		require.NoError(t, err)
		assert.Len(t, e.Weights, 3)
		entries = append(entries, e)
	}
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].Loss, entries[i-1].Loss+1e-12)
	}

	assert.False(t, reg.IsFitted(), "FitTrajectory must not store weights")
	assert.Nil(t, reg.Weights())
}

func TestLinearRegressionFailedFitKeepsWeights(t *testing.T) {
	X, y := lineData()
	reg, err := NewLinearRegression(WithFitIntercept(false), WithLearningRate(0.1), WithRandomState(1)).Fit(X, y)
	require.NoError(t, err)
	before := reg.Weights()

	var big mat.Dense
	big.Scale(1000, X)
	_, err = reg.Fit(&big, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDivergedOptimization))
	assert.Equal(t, before, reg.Weights())

	_, err = reg.Fit(X, mat.NewDense(3, 1, nil))
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
	assert.Equal(t, before, reg.Weights())
	assert.True(t, reg.IsFitted())
}

func TestLinearRegressionDivergence(t *testing.T) {
	X, y := lineData()
	_, err := NewLinearRegression(
		WithFitIntercept(false),
		WithLearningRate(1000),
		WithInitialWeights([]float64{0}),
	).Fit(X, y)
	require.Error(t, err)

	var divErr *errors.DivergenceError
	require.True(t, errors.As(err, &divErr))
	assert.Less(t, divErr.Iteration, 100)
	assert.Equal(t, 1000.0, divErr.LearningRate)
}

func TestLinearRegressionInvalidConfiguration(t *testing.T) {
	X, y := lineData()

	tests := []struct {
		name string
		opt  Option
	}{
		{"batch size above n", WithBatchSize(5)},
		{"negative batch size", WithBatchSize(-1)},
		{"zero learning rate", WithLearningRate(0)},
		{"negative tolerance", WithTol(-1)},
		{"zero max iterations", WithMaxIter(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewLinearRegression(tt.opt).Fit(X, y)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
			assert.False(t, reg.IsFitted())
		})
	}
}

func TestLinearRegressionEmptyData(t *testing.T) {
	reg, err := NewLinearRegression().Fit(&mat.Dense{}, &mat.Dense{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
	assert.False(t, reg.IsFitted())
}

func TestLinearRegressionInitialWeightsLength(t *testing.T) {
	X, y := lineData()
	_, err := NewLinearRegression(WithInitialWeights([]float64{0})).Fit(X, y)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch), "intercept needs two weights")

	reg, err := NewLinearRegression(WithInitialWeights([]float64{0, 0}), WithLearningRate(0.1), WithTol(1e-8)).Fit(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, reg.Coef()[0], 0.05)
}

func TestLinearRegressionPredictErrors(t *testing.T) {
	reg := NewLinearRegression()
	_, err := reg.Predict(mat.NewDense(1, 1, nil))
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	X, y := planeData()
	_, err = reg.Fit(X, y)
	require.NoError(t, err)
	_, err = reg.Predict(mat.NewDense(1, 3, nil))
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}

func TestLinearRegressionPartialFit(t *testing.T) {
	X, y := lineData()
	reg := NewLinearRegression(WithFitIntercept(false), WithLearningRate(0.1), WithTol(1e-6), WithRandomState(9))

	require.NoError(t, reg.PartialFit(X, y))
	assert.True(t, reg.IsFitted())
	first := reg.NIter()

	require.NoError(t, reg.PartialFit(X, y))
	assert.Less(t, reg.NIter(), first)
	assert.LessOrEqual(t, reg.NIter(), 2, "already at the optimum")
	assert.InDelta(t, 2.0, reg.Weights()[0], 1e-2)
}

func TestLinearRegressionExhaustion(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	X, y := planeData()
	reg, err := NewLinearRegression(WithMaxIter(3), WithTol(1e-12), WithRandomState(1)).Fit(X, y)
	require.NoError(t, err)
	assert.Equal(t, 3, reg.NIter())
	assert.False(t, reg.Converged())
	assert.Len(t, warnings, 1)
}

func TestLinearRegressionLogging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelInfo)
	X, y := lineData()

	_, err := NewLinearRegression(WithLogger(logger), WithRandomState(1)).Fit(X, y)
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("Model fitted"))
	assert.True(t, logger.ContainsField(log.ModelNameKey, "LinearRegression"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))
}

func TestLinearRegressionLogsModelNameOnce(t *testing.T) {
	logger, buf := log.NewTestLogger(log.LevelDebug)
	X, y := lineData()

	_, err := NewLinearRegression(WithLogger(logger), WithRandomState(1), WithMaxIter(5)).Fit(X, y)
	require.NoError(t, err)
	require.True(t, logger.ContainsMessage("Epoch completed"))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, 1, strings.Count(line, `"`+log.ModelNameKey+`"`), line)
	}
}

func TestLinearRegressionParamsAndString(t *testing.T) {
	reg := NewLinearRegression(WithLearningRate(0.2), WithBatchSize(4), WithRandomState(5))
	params := reg.GetParams()
	assert.Equal(t, 0.2, params["learning_rate"])
	assert.Equal(t, 4, params["batch_size"])
	assert.Equal(t, int64(5), params["random_state"])
	assert.Contains(t, reg.String(), "learning_rate=0.2")

	X, y := lineData()
	_, err := reg.Fit(X, y)
	require.NoError(t, err)
	assert.Contains(t, reg.String(), "n_features=1")
}

func BenchmarkLinearRegressionFitStochastic(b *testing.B) {
	X, y := planeData()
	for i := 0; i < b.N; i++ {
		if _, err := NewLinearRegression(WithBatchSize(1), WithRandomState(1), WithMaxIter(100)).Fit(X, y); err != nil {
			b.Fatal(err)
		}
	}
}
