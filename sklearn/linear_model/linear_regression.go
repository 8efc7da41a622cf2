package linear_model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/model"
	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/metrics"
	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/pkg/log"
)

// LinearRegression fits y ≈ X·w by gradient descent on the mean squared
// error.
//
// A LinearRegression is not safe for concurrent Fit calls.
type LinearRegression struct {
	sgdModel
}

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(opts ...Option) *LinearRegression {
	return &LinearRegression{
		sgdModel: newSGDModel("LinearRegression", SquaredError{}, opts),
	}
}

// Fit trains the model from fresh weights and returns the receiver.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (_ *LinearRegression, err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")
	if err := lr.fit(log.OperationFit, X, y, lr.params.initialWeights, nil); err != nil {
		return lr, err
	}
	return lr, nil
}

// PartialFit continues training from the current weights. On an unfitted
// model it starts like Fit.
func (lr *LinearRegression) PartialFit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.PartialFit")
	return lr.fit(log.OperationPartialFit, X, y, lr.warmStart(X), nil)
}

// FitTrajectory returns the fitting loop as a lazy sequence of
// (weights, loss) entries. It uses the same configuration and stopping rules
// as Fit but does not change the model's stored weights.
func (lr *LinearRegression) FitTrajectory(X, y mat.Matrix) (*optimize.Trajectory, error) {
	return lr.trajectory("LinearRegression.FitTrajectory", X, y, lr.params.initialWeights, nil)
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	z, err := lr.decision("Predict", X)
	if err != nil {
		return nil, err
	}
	return column(z), nil
}

// Score はモデルの決定係数（R²）を計算
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// String returns the string representation of the model
func (lr *LinearRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LinearRegression(learning_rate=%g, tol=%g, max_iter=%d, batch_size=%d, fit_intercept=%t)",
			lr.params.learningRate, lr.params.tol, lr.params.maxIter, lr.params.batchSize, lr.params.fitIntercept)
	}
	nFeatures, _ := lr.state.Dimensions()
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, n_iter=%d, converged=%t)",
		lr.params.fitIntercept, nFeatures, lr.nIter, lr.Converged())
}

var (
	_ model.Fitter[*LinearRegression] = (*LinearRegression)(nil)
	_ model.Regressor                 = (*LinearRegression)(nil)
	_ model.TrajectoryFitter          = (*LinearRegression)(nil)
	_ model.IncrementalFitter         = (*LinearRegression)(nil)
	_ model.ParameterGetter           = (*LinearRegression)(nil)
)
