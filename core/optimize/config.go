package optimize

import (
	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// Default hyperparameters.
const (
	DefaultLearningRate  = 0.01
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 1000
)

// Config holds the fitting loop hyperparameters.
type Config struct {
	// MaxIterations is the epoch budget.
	MaxIterations int
	// Tolerance stops the loop once |previous_loss - loss| < Tolerance.
	Tolerance float64
	// LearningRate is the step size. It is also the base rate when Schedule
	// is nil.
	LearningRate float64
	// BatchSize is the number of samples per optimizer step. Zero means all
	// samples (full-batch gradient descent); 1 is pure stochastic descent.
	BatchSize int
	// Seed makes initialization and shuffling reproducible. Nil means a
	// fresh random seed per fit.
	Seed *int64
	// Schedule overrides the constant LearningRate when set.
	Schedule Schedule
}

// DefaultConfig returns a full-batch configuration with the package defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		LearningRate:  DefaultLearningRate,
	}
}

// Validate checks the configuration against the number of training samples.
// A zero BatchSize is valid and means nSamples; a negative one or one above
// nSamples is an InvalidConfiguration.
func (c Config) Validate(nSamples int) error {
	if c.LearningRate <= 0 || !errors.IsFinite(c.LearningRate) {
		return errors.NewConfigurationError("learning_rate", "must be a positive finite number", c.LearningRate)
	}
	if c.Tolerance <= 0 || !errors.IsFinite(c.Tolerance) {
		return errors.NewConfigurationError("tolerance", "must be a positive finite number", c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return errors.NewConfigurationError("max_iterations", "must be positive", c.MaxIterations)
	}
	if c.BatchSize < 0 || c.BatchSize > nSamples {
		return errors.NewConfigurationError("batch_size", "must be in [1, n_samples] (0 selects n_samples)", c.BatchSize)
	}
	return nil
}

// EffectiveBatchSize resolves a zero BatchSize to nSamples.
func (c Config) EffectiveBatchSize(nSamples int) int {
	if c.BatchSize == 0 {
		return nSamples
	}
	return c.BatchSize
}

func (c Config) schedule() Schedule {
	if c.Schedule != nil {
		return c.Schedule
	}
	return Constant(c.LearningRate)
}
