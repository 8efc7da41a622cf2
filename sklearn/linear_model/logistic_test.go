package linear_model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// separableData has class 0 around (-2, -2) and class 1 around (2, 2).
func separableData() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(12, 2, []float64{
		-2, -1.5,
		-1.5, -2.5,
		-3, -2,
		-2.5, -1,
		-1, -2,
		-2, -3,
		2, 1.5,
		1.5, 2.5,
		3, 2,
		2.5, 1,
		1, 2,
		2, 3,
	})
	y := mat.NewDense(12, 1, []float64{
		0, 0, 0, 0, 0, 0,
		1, 1, 1, 1, 1, 1,
	})
	return X, y
}

func TestLogisticRegressionSeparable(t *testing.T) {
	X, y := separableData()

	clf, err := NewLogisticRegression(
		WithFitIntercept(true),
		WithLearningRate(0.1),
		WithMaxIter(500),
		WithRandomState(2),
	).Fit(X, y)
	require.NoError(t, err)
	assert.LessOrEqual(t, clf.NIter(), 500)
	assert.Len(t, clf.Weights(), 3)

	acc, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, 0.95)

	pred, err := clf.Predict(mat.NewDense(2, 2, []float64{
		-1, -1,
		1, 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred.At(0, 0))
	assert.Equal(t, 1.0, pred.At(1, 0))
}

func TestLogisticRegressionStochastic(t *testing.T) {
	X, y := separableData()

	clf, err := NewLogisticRegression(
		WithLearningRate(0.05),
		WithBatchSize(3),
		WithMaxIter(500),
		WithRandomState(11),
	).Fit(X, y)
	require.NoError(t, err)

	acc, err := clf.Score(X, y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, acc, 0.95)
}

func TestLogisticRegressionPredictProba(t *testing.T) {
	X, y := separableData()
	clf, err := NewLogisticRegression(WithLearningRate(0.1), WithRandomState(1)).Fit(X, y)
	require.NoError(t, err)

	probas, err := clf.PredictProba(X)
	require.NoError(t, err)
	scores, err := clf.DecisionFunction(X)
	require.NoError(t, err)
	pred, err := clf.Predict(X)
	require.NoError(t, err)

	rows, cols := probas.Dims()
	require.Equal(t, 12, rows)
	require.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		p0, p1 := probas.At(i, 0), probas.At(i, 1)
		assert.InDelta(t, 1.0, p0+p1, 1e-12)
		assert.InDelta(t, Sigmoid(scores.At(i, 0)), p1, 1e-12)
		assert.Equal(t, p1 >= 0.5, pred.At(i, 0) == 1)
	}
}

func TestLogisticRegressionThreshold(t *testing.T) {
	X, y := separableData()
	strict, err := NewLogisticRegression(WithThreshold(0.999999), WithRandomState(1)).Fit(X, y)
	require.NoError(t, err)

	pred, err := strict.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mat.Sum(pred), "nothing is that certain after a short fit")

	_, err = NewLogisticRegression(WithThreshold(1.5)).Fit(X, y)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))
}

func TestLogisticRegressionRejectsNonBinaryTargets(t *testing.T) {
	X, _ := separableData()
	y := mat.NewDense(12, 1, nil)
	y.Set(3, 0, 2)

	clf, err := NewLogisticRegression().Fit(X, y)
	var valueErr *errors.ValueError
	require.True(t, errors.As(err, &valueErr))
	assert.Contains(t, err.Error(), "index 3")
	assert.False(t, clf.IsFitted())
}

func TestLogisticRegressionNotFitted(t *testing.T) {
	clf := NewLogisticRegression()
	X, _ := separableData()

	for name, call := range map[string]func(mat.Matrix) (mat.Matrix, error){
		"Predict":          clf.Predict,
		"PredictProba":     clf.PredictProba,
		"DecisionFunction": clf.DecisionFunction,
	} {
		_, err := call(X)
		var nf *errors.NotFittedError
		require.True(t, errors.As(err, &nf), name)
		assert.Equal(t, name, nf.Method)
	}
}

func TestLogisticRegressionTrajectoryLossDecreases(t *testing.T) {
	X, y := separableData()
	traj, err := NewLogisticRegression(WithLearningRate(0.1), WithRandomState(3)).FitTrajectory(X, y)
	require.NoError(t, err)

	entries, err := traj.Collect()
	require.NoError(t, err)
	require.Greater(t, len(entries), 1)
	assert.Less(t, entries[len(entries)-1].Loss, entries[0].Loss)
}

func TestLogisticRegressionParams(t *testing.T) {
	clf := NewLogisticRegression(WithThreshold(0.7))
	assert.Equal(t, 0.7, clf.GetParams()["threshold"])
	assert.Contains(t, clf.String(), "threshold=0.7")
}
