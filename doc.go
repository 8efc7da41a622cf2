// Package skratch is a small machine learning library for Go that implements
// classic linear models from first principles, with the optimization itself
// as a first-class, inspectable object.
//
// skratch offers a scikit-learn-like API on top of gonum, so the models
// read familiar to anyone who has used Python's ecosystem, while the fitting
// loop underneath is exposed as a lazy trajectory of (weights, loss) pairs.
//
// # Features
//
// - Gradient-fitted models: LinearRegression and LogisticRegression trained by
// mini-batch stochastic gradient descent
// - Trajectories: pull the optimization epoch by epoch, plot it or stop early
// - Robust Error Handling: typed errors for dimension mismatches, invalid
// configuration and divergence
// - Structured Logging: zerolog-backed, silent unless configured
//
// # Installation
//
//	go get github.com/YuminosukeSato/skratch
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/skratch/sklearn/linear_model"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
//	    y := mat.NewDense(4, 1, []float64{0, 2, 4, 6})
//
//	    model, err := linear_model.NewLinearRegression(
//	        linear_model.WithLearningRate(0.1),
//	        linear_model.WithRandomState(2),
//	    ).Fit(X, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(mat.NewDense(2, 1, []float64{4, 5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", mat.Formatted(predictions))
//	}
//
// # Trajectories
//
// FitTrajectory runs the same loop as Fit but hands it to the caller:
//
//	traj, err := model.FitTrajectory(X, y)
//	for entry, err := range traj.All() {
//	    if err != nil {
//	        break
//	    }
//	    fmt.Println(entry.Epoch, entry.Loss)
//	}
//
// # Packages
//
//   - core/optimize: optimizer, batch sampler, learning-rate schedules, fitting loop
//   - core/model: estimator state and model interfaces
//   - sklearn/linear_model: LinearRegression, LogisticRegression
//   - linear: closed-form least squares reference solver
//   - preprocessing: scalers, AddDummyFeature, PolynomialFeatures
//   - metrics: MSE, RMSE, MAE, R², accuracy, log loss
//   - visualization: loss curves, fit frames, HTML charts, JSON-lines export
//   - pkg/errors, pkg/log: error types and structured logging
//
// # License
//
// skratch is released under the MIT License.
package skratch
