package optimize

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// GradientFunc maps (weights, batch) to a gradient of the same length as
// weights.
type GradientFunc func(weights []float64, batch Batch) ([]float64, error)

// Optimizer computes updated weights from the current weights and a batch.
// Implementations must not modify the weights slice they are given.
type Optimizer interface {
	Step(grad GradientFunc, weights []float64, batch Batch, learningRate float64) ([]float64, error)
}

// SGD is plain (stochastic) gradient descent:
//
//	new = weights - learningRate * grad(weights, batch)
//
// Whether it is full-batch or stochastic depends only on the batches it is
// handed; see BatchSampler.
type SGD struct{}

// NewSGD returns a gradient descent optimizer.
func NewSGD() *SGD {
	return &SGD{}
}

// Step implements Optimizer.
func (SGD) Step(grad GradientFunc, weights []float64, batch Batch, learningRate float64) ([]float64, error) {
	if learningRate <= 0 || !errors.IsFinite(learningRate) {
		return nil, errors.NewConfigurationError("learning_rate", "must be a positive finite number", learningRate)
	}
	g, err := grad(weights, batch)
	if err != nil {
		return nil, err
	}
	if len(g) != len(weights) {
		return nil, errors.NewDimensionError("SGD.Step", len(weights), len(g), 1)
	}
	next := make([]float64, len(weights))
	floats.AddScaledTo(next, weights, -learningRate, g)
	return next, nil
}
