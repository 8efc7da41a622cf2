package linear_model

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/model"
	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/metrics"
	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/pkg/log"
	"github.com/YuminosukeSato/skratch/preprocessing"
)

// sgdModel is the fitting machinery shared by LinearRegression and
// LogisticRegression. Its only learned state is the weight vector; the
// intercept, when fitted, is weights[0].
type sgdModel struct {
	name      string
	state     *model.StateManager
	params    sgdParams
	objective optimize.Objective
	logger    log.Logger
	// base is the configured logger without model context; the fitting loop
	// adds its own.
	base log.Logger

	weights []float64
	nIter   int
	status  optimize.Status
	loss    float64
}

func newSGDModel(name string, objective optimize.Objective, opts []Option) sgdModel {
	params := defaultParams()
	for _, opt := range opts {
		opt(&params)
	}
	logger := params.logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return sgdModel{
		name:      name,
		state:     model.NewStateManager(),
		params:    params,
		objective: objective,
		logger:    logger.With(log.ModelNameKey, name),
		base:      logger,
		loss:      math.NaN(),
	}
}

// design returns X with the intercept column prepended when configured.
func (m *sgdModel) design(X mat.Matrix) mat.Matrix {
	if m.params.fitIntercept {
		return preprocessing.AddDummyFeature(X, 1.0)
	}
	return X
}

func (m *sgdModel) nWeights(nFeatures int) int {
	if m.params.fitIntercept {
		return nFeatures + 1
	}
	return nFeatures
}

// targets validates y against X and returns it as a vector.
func (m *sgdModel) targets(op string, X, y mat.Matrix) (mat.Vector, error) {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	yRows, _ := y.Dims()
	if rows != yRows {
		return nil, errors.NewDimensionError(op, rows, yRows, 0)
	}
	return metrics.ColumnVector(op, y)
}

// trajectory builds a fitting loop over (X, y) starting from initial, or
// from random weights when initial is nil.
func (m *sgdModel) trajectory(op string, X, y mat.Matrix, initial []float64, validate func(mat.Vector) error) (*optimize.Trajectory, error) {
	yv, err := m.targets(op, X, y)
	if err != nil {
		return nil, err
	}
	if validate != nil {
		if err := validate(yv); err != nil {
			return nil, err
		}
	}
	_, nFeatures := X.Dims()
	if initial != nil && len(initial) != m.nWeights(nFeatures) {
		return nil, errors.NewDimensionError(op, m.nWeights(nFeatures), len(initial), 1)
	}

	opts := []optimize.TrajectoryOption{
		optimize.WithLogger(m.base),
		optimize.WithName(m.name),
	}
	if m.params.optimizer != nil {
		opts = append(opts, optimize.WithOptimizer(m.params.optimizer))
	}
	return optimize.NewTrajectory(m.objective, m.design(X), yv, initial, m.params.config(), opts...)
}

// fit runs the loop to its terminal state and stores the final weights. On
// error the previously stored weights are left as they were.
func (m *sgdModel) fit(operation string, X, y mat.Matrix, initial []float64, validate func(mat.Vector) error) error {
	op := m.name + "." + operation
	traj, err := m.trajectory(op, X, y, initial, validate)
	if err != nil {
		return err
	}
	final, err := traj.Run()
	if err != nil {
		return errors.Wrapf(err, "%s", op)
	}

	nSamples, nFeatures := X.Dims()
	m.weights = final.Weights
	m.nIter = final.Iteration
	m.status = final.Status
	m.loss = final.Loss
	m.state.SetFitted(nFeatures, nSamples)

	m.logger.Info("Model fitted",
		log.OperationKey, operation,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.IterationKey, m.nIter,
		log.StatusKey, m.status.String(),
	)
	return nil
}

// warmStart returns the starting weights for PartialFit.
func (m *sgdModel) warmStart(X mat.Matrix) []float64 {
	_, nFeatures := X.Dims()
	if m.state.IsFitted() && len(m.weights) == m.nWeights(nFeatures) {
		return append([]float64(nil), m.weights...)
	}
	return m.params.initialWeights
}

// decision returns the linear scores design(X)·w.
func (m *sgdModel) decision(method string, X mat.Matrix) (*mat.VecDense, error) {
	if err := m.state.RequireFitted(m.name, method); err != nil {
		return nil, err
	}
	_, nFeatures := X.Dims()
	if err := m.state.RequireFeatures(m.name+"."+method, nFeatures); err != nil {
		return nil, err
	}
	return scores(m.weights, m.design(X)), nil
}

// Weights returns a copy of the full weight vector, intercept first when
// fitted with one.
func (m *sgdModel) Weights() []float64 {
	if m.weights == nil {
		return nil
	}
	return append([]float64(nil), m.weights...)
}

// Coef returns the feature weights without the intercept.
func (m *sgdModel) Coef() []float64 {
	if m.weights == nil {
		return nil
	}
	if m.params.fitIntercept {
		return append([]float64(nil), m.weights[1:]...)
	}
	return append([]float64(nil), m.weights...)
}

// Intercept returns the learned intercept, or 0 when none is fitted.
func (m *sgdModel) Intercept() float64 {
	if m.weights == nil || !m.params.fitIntercept {
		return 0
	}
	return m.weights[0]
}

// NIter returns the number of epochs run by the latest successful fit.
func (m *sgdModel) NIter() int {
	return m.nIter
}

// Converged reports whether the latest successful fit met the tolerance
// rather than exhausting its epoch budget.
func (m *sgdModel) Converged() bool {
	return m.status == optimize.Converged
}

// Loss returns the full-dataset training loss after the latest fit.
func (m *sgdModel) Loss() float64 {
	return m.loss
}

// IsFitted returns whether the model has been fitted.
func (m *sgdModel) IsFitted() bool {
	return m.state.IsFitted()
}

// GetParams returns the model hyperparameters.
func (m *sgdModel) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"learning_rate": m.params.learningRate,
		"tol":           m.params.tol,
		"max_iter":      m.params.maxIter,
		"batch_size":    m.params.batchSize,
		"fit_intercept": m.params.fitIntercept,
		"random_state":  nil,
	}
	if m.params.randomState != nil {
		params["random_state"] = *m.params.randomState
	}
	return params
}

func column(v *mat.VecDense) *mat.Dense {
	return mat.NewDense(v.Len(), 1, append([]float64(nil), v.RawVector().Data...))
}
