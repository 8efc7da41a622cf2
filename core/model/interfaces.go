package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/core/optimize"
)

// Fitter は学習可能なモデルのインターフェース
//
// Fit returns the fitted model itself so construction and fitting read as
// one expression:
//
//	reg, err := linear_model.NewLinearRegression().Fit(X, y)
type Fitter[M any] interface {
	Fit(X, y mat.Matrix) (M, error)
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is implemented by models that evaluate themselves on labelled data:
// R² for regressors and accuracy for classifiers.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights returns the full learned vector, intercept first when fitted
	// with an intercept.
	Weights() []float64
	// Coef は学習された重み（係数）を返す
	Coef() []float64
	// Intercept は学習された切片を返す
	Intercept() float64
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Predictor
	Scorer
	LinearModel
}

// Classifier combines interfaces for binary classification models.
type Classifier interface {
	Predictor
	Scorer
	LinearModel

	// PredictProba returns an n×2 matrix of [P(y=0), P(y=1)].
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// DecisionFunction returns the raw linear scores before the link.
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
}

// TrajectoryFitter exposes the fitting loop itself instead of only its final
// weights, for diagnostics and animation.
type TrajectoryFitter interface {
	FitTrajectory(X, y mat.Matrix) (*optimize.Trajectory, error)
}

// IncrementalFitter は逐次学習可能なモデルのインターフェース
//
// PartialFit continues from the current weights instead of reinitializing
// them. On an unfitted model it behaves like Fit.
type IncrementalFitter interface {
	PartialFit(X, y mat.Matrix) error

	// NIter returns the number of epochs run by the latest fit.
	NIter() int
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
