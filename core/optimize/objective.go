package optimize

import "gonum.org/v1/gonum/mat"

// Objective computes a model's scalar loss and its analytic gradient at a
// weight vector for a data batch. X must already contain any intercept
// column, so len(w) equals the number of columns of X.
type Objective interface {
	// Name identifies the objective in logs, e.g. "squared_error".
	Name() string

	// Loss returns the mean loss over the rows of X.
	Loss(w []float64, X mat.Matrix, y mat.Vector) float64

	// Gradient returns dLoss/dw, a fresh slice of len(w).
	Gradient(w []float64, X mat.Matrix, y mat.Vector) []float64
}

// GradientOf adapts an Objective into the GradientFunc consumed by an
// Optimizer.
func GradientOf(obj Objective) GradientFunc {
	return func(w []float64, b Batch) ([]float64, error) {
		return obj.Gradient(w, b.X, b.Y), nil
	}
}
