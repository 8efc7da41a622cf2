// Package linear provides the closed-form least squares solution for linear
// regression. It is the reference the gradient-fitted models are checked
// against: for a well-conditioned design, full-batch gradient descent on the
// squared error converges to the same weights.
package linear

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/model"
	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/preprocessing"
)

// rankTolerance below which an R diagonal entry is treated as zero.
const rankTolerance = 1e-10

// LeastSquares は最小二乗法による線形回帰モデル
//
// The weight layout matches linear_model.LinearRegression: the intercept,
// when fitted, is weights[0].
type LeastSquares struct {
	state        *model.StateManager
	fitIntercept bool
	weights      []float64
}

// NewLeastSquares は新しい最小二乗ソルバーを作成する
func NewLeastSquares(opts ...Option) *LeastSquares {
	ls := &LeastSquares{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range opts {
		opt(ls)
	}
	return ls
}

func (ls *LeastSquares) design(X mat.Matrix) mat.Matrix {
	if ls.fitIntercept {
		return preprocessing.AddDummyFeature(X, 1.0)
	}
	return X
}

// Fit solves min ||design(X)·w - y||² by QR factorization. A rank deficient
// design yields ErrSingularMatrix.
func (ls *LeastSquares) Fit(X, y mat.Matrix) (*LeastSquares, error) {
	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return ls, errors.NewModelError("LeastSquares.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return ls, errors.NewDimensionError("LeastSquares.Fit", r, ry, 0)
	}
	if cy != 1 {
		return ls, errors.NewDimensionError("LeastSquares.Fit", 1, cy, 1)
	}

	A := ls.design(X)
	_, n := A.Dims()
	if r < n {
		return ls, errors.NewModelError("LeastSquares.Fit", "underdetermined system", errors.ErrSingularMatrix)
	}

	// 数値的に安定なQR分解を使用
	var qr mat.QR
	qr.Factorize(A)
	var R mat.Dense
	qr.RTo(&R)
	for i := 0; i < n; i++ {
		if v := R.At(i, i); v < rankTolerance && v > -rankTolerance {
			return ls, errors.NewModelError("LeastSquares.Fit", "rank deficient design matrix", errors.ErrSingularMatrix)
		}
	}

	coef := mat.NewDense(n, 1, nil)
	if err := qr.SolveTo(coef, false, y); err != nil {
		return ls, errors.NewModelError("LeastSquares.Fit", "solve failed", errors.Wrap(errors.ErrSingularMatrix, err.Error()))
	}

	ls.weights = mat.Col(nil, 0, coef)
	ls.state.SetFitted(c, r)
	return ls, nil
}

// Predict は入力データに対する予測を行う
func (ls *LeastSquares) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := ls.state.RequireFitted("LeastSquares", "Predict"); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := ls.state.RequireFeatures("LeastSquares.Predict", c); err != nil {
		return nil, err
	}
	pred := mat.NewDense(r, 1, nil)
	pred.Mul(ls.design(X), mat.NewDense(len(ls.weights), 1, ls.weights))
	return pred, nil
}

// Weights returns a copy of the solution, intercept first when fitted with
// one.
func (ls *LeastSquares) Weights() []float64 {
	return append([]float64(nil), ls.weights...)
}

// Coef は学習された重み（係数）を返す
func (ls *LeastSquares) Coef() []float64 {
	if ls.fitIntercept && ls.weights != nil {
		return append([]float64(nil), ls.weights[1:]...)
	}
	return ls.Weights()
}

// Intercept は学習された切片を返す
func (ls *LeastSquares) Intercept() float64 {
	if !ls.fitIntercept || ls.weights == nil {
		return 0
	}
	return ls.weights[0]
}

// IsFitted returns whether the model has been fitted
func (ls *LeastSquares) IsFitted() bool {
	return ls.state.IsFitted()
}

func (ls *LeastSquares) String() string {
	return fmt.Sprintf("LeastSquares(fit_intercept=%t)", ls.fitIntercept)
}

var (
	_ model.Fitter[*LeastSquares] = (*LeastSquares)(nil)
	_ model.Predictor             = (*LeastSquares)(nil)
	_ model.LinearModel           = (*LeastSquares)(nil)
)
