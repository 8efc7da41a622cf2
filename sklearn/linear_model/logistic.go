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

// LogisticRegression is a binary classifier p(y=1|x) = sigmoid(x·w) fitted
// by gradient descent on the cross-entropy. Targets must be 0 or 1.
//
// A LogisticRegression is not safe for concurrent Fit calls.
type LogisticRegression struct {
	sgdModel
}

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	return &LogisticRegression{
		sgdModel: newSGDModel("LogisticRegression", CrossEntropy{}, opts),
	}
}

func (lr *LogisticRegression) validate() error {
	if t := lr.params.threshold; !(t > 0 && t < 1) {
		return errors.NewConfigurationError("threshold", "must be in (0, 1)", t)
	}
	return nil
}

func binaryTargets(y mat.Vector) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression", fmt.Sprintf("targets must be 0 or 1, got %g at index %d", v, i))
		}
	}
	return nil
}

// Fit trains the classifier from fresh weights and returns the receiver.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) (_ *LogisticRegression, err error) {
	defer errors.Recover(&err, "LogisticRegression.Fit")
	if err := lr.validate(); err != nil {
		return lr, err
	}
	if err := lr.fit(log.OperationFit, X, y, lr.params.initialWeights, binaryTargets); err != nil {
		return lr, err
	}
	return lr, nil
}

// PartialFit continues training from the current weights. On an unfitted
// model it starts like Fit.
func (lr *LogisticRegression) PartialFit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LogisticRegression.PartialFit")
	if err := lr.validate(); err != nil {
		return err
	}
	return lr.fit(log.OperationPartialFit, X, y, lr.warmStart(X), binaryTargets)
}

// FitTrajectory returns the fitting loop as a lazy sequence of
// (weights, loss) entries without changing the stored weights.
func (lr *LogisticRegression) FitTrajectory(X, y mat.Matrix) (*optimize.Trajectory, error) {
	if err := lr.validate(); err != nil {
		return nil, err
	}
	return lr.trajectory("LogisticRegression.FitTrajectory", X, y, lr.params.initialWeights, binaryTargets)
}

// DecisionFunction returns the linear scores before the sigmoid as an n×1
// matrix.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	z, err := lr.decision("DecisionFunction", X)
	if err != nil {
		return nil, err
	}
	return column(z), nil
}

// PredictProba returns an n×2 matrix whose rows are [P(y=0), P(y=1)].
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	z, err := lr.decision("PredictProba", X)
	if err != nil {
		return nil, err
	}
	probas := mat.NewDense(z.Len(), 2, nil)
	for i := 0; i < z.Len(); i++ {
		p := Sigmoid(z.AtVec(i))
		probas.Set(i, 0, 1-p)
		probas.Set(i, 1, p)
	}
	return probas, nil
}

// Predict returns 1 where P(y=1) >= threshold and 0 elsewhere.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	z, err := lr.decision("Predict", X)
	if err != nil {
		return nil, err
	}
	pred := mat.NewDense(z.Len(), 1, nil)
	for i := 0; i < z.Len(); i++ {
		if Sigmoid(z.AtVec(i)) >= lr.params.threshold {
			pred.Set(i, 0, 1)
		}
	}
	return pred, nil
}

// Score returns the mean accuracy on the given test data and labels
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// GetParams returns the model hyperparameters
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	params := lr.sgdModel.GetParams()
	params["threshold"] = lr.params.threshold
	return params
}

// String returns the string representation of the model
func (lr *LogisticRegression) String() string {
	if !lr.IsFitted() {
		return fmt.Sprintf("LogisticRegression(learning_rate=%g, tol=%g, max_iter=%d, batch_size=%d, fit_intercept=%t, threshold=%g)",
			lr.params.learningRate, lr.params.tol, lr.params.maxIter, lr.params.batchSize, lr.params.fitIntercept, lr.params.threshold)
	}
	nFeatures, _ := lr.state.Dimensions()
	return fmt.Sprintf("LogisticRegression(fit_intercept=%t, n_features=%d, n_iter=%d, converged=%t)",
		lr.params.fitIntercept, nFeatures, lr.nIter, lr.Converged())
}

var (
	_ model.Fitter[*LogisticRegression] = (*LogisticRegression)(nil)
	_ model.Classifier                  = (*LogisticRegression)(nil)
	_ model.TrajectoryFitter            = (*LogisticRegression)(nil)
	_ model.IncrementalFitter           = (*LogisticRegression)(nil)
	_ model.ParameterGetter             = (*LogisticRegression)(nil)
)
