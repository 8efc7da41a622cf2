package linear_model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// Sigmoid is the logistic function with a clamped exponent, finite for any
// finite input.
func Sigmoid(z float64) float64 {
	return errors.StableSigmoid(z)
}

// scores returns X·w.
func scores(w []float64, X mat.Matrix) *mat.VecDense {
	var z mat.VecDense
	z.MulVec(X, mat.NewVecDense(len(w), w))
	return &z
}

// gradient returns (scale)·Xᵀ·r as a fresh slice.
func gradient(X mat.Matrix, r mat.Vector, scale float64) []float64 {
	var g mat.VecDense
	g.MulVec(X.T(), r)
	g.ScaleVec(scale, &g)
	return append([]float64(nil), g.RawVector().Data...)
}

// SquaredError is the mean squared error of a linear prediction:
//
//	L(w)  = mean((X·w - y)²)
//	∇L(w) = (2/n)·Xᵀ·(X·w - y)
type SquaredError struct{}

// Name implements optimize.Objective.
func (SquaredError) Name() string { return "squared_error" }

func (SquaredError) residual(w []float64, X mat.Matrix, y mat.Vector) *mat.VecDense {
	r := scores(w, X)
	r.SubVec(r, y)
	return r
}

// Loss implements optimize.Objective.
func (s SquaredError) Loss(w []float64, X mat.Matrix, y mat.Vector) float64 {
	r := s.residual(w, X, y)
	return mat.Dot(r, r) / float64(r.Len())
}

// Gradient implements optimize.Objective.
func (s SquaredError) Gradient(w []float64, X mat.Matrix, y mat.Vector) []float64 {
	r := s.residual(w, X, y)
	return gradient(X, r, 2/float64(r.Len()))
}

// CrossEntropy is the mean binary cross-entropy of a sigmoid link with 0/1
// targets:
//
//	p     = sigmoid(X·w)
//	L(w)  = -mean(y·log(p+ε) + (1-y)·log(1-p+ε))
//	∇L(w) = (1/n)·Xᵀ·(p - y)
type CrossEntropy struct{}

// Name implements optimize.Objective.
func (CrossEntropy) Name() string { return "cross_entropy" }

func probabilities(w []float64, X mat.Matrix) *mat.VecDense {
	p := scores(w, X)
	for i := 0; i < p.Len(); i++ {
		p.SetVec(i, Sigmoid(p.AtVec(i)))
	}
	return p
}

// Loss implements optimize.Objective.
func (CrossEntropy) Loss(w []float64, X mat.Matrix, y mat.Vector) float64 {
	p := probabilities(w, X)
	n := p.Len()
	var sum float64
	for i := 0; i < n; i++ {
		yi, pi := y.AtVec(i), p.AtVec(i)
		sum += yi*errors.StabilizeLog(pi) + (1-yi)*errors.StabilizeLog(1-pi)
	}
	return -sum / float64(n)
}

// Gradient implements optimize.Objective.
func (CrossEntropy) Gradient(w []float64, X mat.Matrix, y mat.Vector) []float64 {
	p := probabilities(w, X)
	p.SubVec(p, y)
	return gradient(X, p, 1/float64(p.Len()))
}

var (
	_ optimize.Objective = SquaredError{}
	_ optimize.Objective = CrossEntropy{}
)
