// Package linear_model provides linear and logistic regression trained by
// gradient descent on the core/optimize fitting loop.
//
// Both models share the same hyperparameters, set with functional options:
//
//	reg, err := linear_model.NewLinearRegression(
//	    linear_model.WithLearningRate(0.1),
//	    linear_model.WithTol(1e-6),
//	    linear_model.WithBatchSize(1),
//	    linear_model.WithRandomState(2),
//	).Fit(X, y)
//
// FitTrajectory exposes the fitting loop instead of only its result, one
// epoch per pulled entry, for plotting how the weights move.
package linear_model
