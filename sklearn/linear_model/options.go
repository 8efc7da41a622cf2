package linear_model

import (
	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/pkg/log"
)

// sgdParams are the hyperparameters shared by the gradient-fitted models.
type sgdParams struct {
	learningRate   float64
	tol            float64
	maxIter        int
	batchSize      int
	fitIntercept   bool
	randomState    *int64
	schedule       optimize.Schedule
	optimizer      optimize.Optimizer
	initialWeights []float64
	threshold      float64
	logger         log.Logger
}

func defaultParams() sgdParams {
	return sgdParams{
		learningRate: optimize.DefaultLearningRate,
		tol:          optimize.DefaultTolerance,
		maxIter:      optimize.DefaultMaxIterations,
		fitIntercept: true,
		threshold:    0.5,
	}
}

func (p sgdParams) config() optimize.Config {
	return optimize.Config{
		MaxIterations: p.maxIter,
		Tolerance:     p.tol,
		LearningRate:  p.learningRate,
		BatchSize:     p.batchSize,
		Seed:          p.randomState,
		Schedule:      p.schedule,
	}
}

// Option configures LinearRegression and LogisticRegression.
type Option func(*sgdParams)

// WithLearningRate sets the step size (default 0.01).
func WithLearningRate(lr float64) Option {
	return func(p *sgdParams) {
		p.learningRate = lr
	}
}

// WithTol sets the convergence tolerance on the per-epoch loss change
// (default 1e-4).
func WithTol(tol float64) Option {
	return func(p *sgdParams) {
		p.tol = tol
	}
}

// WithMaxIter sets the epoch budget (default 1000).
func WithMaxIter(maxIter int) Option {
	return func(p *sgdParams) {
		p.maxIter = maxIter
	}
}

// WithBatchSize sets the samples per optimizer step. 0 (the default) uses
// every sample; 1 is pure stochastic gradient descent. Fit returns an
// ErrInvalidConfiguration error for a negative value or one larger than the
// number of samples.
func WithBatchSize(batchSize int) Option {
	return func(p *sgdParams) {
		p.batchSize = batchSize
	}
}

// WithFitIntercept prepends a constant feature whose weight is the
// intercept (default true).
func WithFitIntercept(fit bool) Option {
	return func(p *sgdParams) {
		p.fitIntercept = fit
	}
}

// WithRandomState seeds weight initialization and shuffling.
func WithRandomState(seed int64) Option {
	return func(p *sgdParams) {
		p.randomState = &seed
	}
}

// WithSchedule replaces the constant learning rate with a schedule.
func WithSchedule(s optimize.Schedule) Option {
	return func(p *sgdParams) {
		p.schedule = s
	}
}

// WithOptimizer replaces plain SGD.
func WithOptimizer(opt optimize.Optimizer) Option {
	return func(p *sgdParams) {
		p.optimizer = opt
	}
}

// WithInitialWeights sets the starting weights of a fresh fit. The length
// must be the number of features, plus one for the intercept (first) when
// fitting one.
func WithInitialWeights(w []float64) Option {
	return func(p *sgdParams) {
		p.initialWeights = append([]float64(nil), w...)
	}
}

// WithThreshold sets the probability above which LogisticRegression
// predicts class 1 (default 0.5).
func WithThreshold(threshold float64) Option {
	return func(p *sgdParams) {
		p.threshold = threshold
	}
}

// WithLogger sets the logger; log.GetLogger() is used otherwise.
func WithLogger(logger log.Logger) Option {
	return func(p *sgdParams) {
		p.logger = logger
	}
}
