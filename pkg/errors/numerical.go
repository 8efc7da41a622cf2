package errors

import (
	"math"
)

// MaxExpArgument bounds the argument passed to math.Exp by StabilizeExp and
// StableSigmoid. exp(500) is finite in float64 with plenty of headroom.
const MaxExpArgument = 500.0

// LogEpsilon is added inside logarithms of probabilities so that log(0) is
// never evaluated.
const LogEpsilon = 1e-15

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CheckLoss returns a DivergenceError when the loss at the given iteration is
// not finite.
func CheckLoss(iteration int, loss, learningRate float64) error {
	if IsFinite(loss) {
		return nil
	}
	return NewDivergenceError("loss", iteration, loss, learningRate, []float64{loss})
}

// CheckWeights returns a DivergenceError when any weight is not finite. Only
// the offending values are reported.
func CheckWeights(iteration int, weights []float64, loss, learningRate float64) error {
	var unstable []float64
	for _, w := range weights {
		if !IsFinite(w) {
			unstable = append(unstable, w)
			if len(unstable) >= 10 {
				break
			}
		}
	}
	if len(unstable) == 0 {
		return nil
	}
	return NewDivergenceError("weights", iteration, loss, learningRate, unstable)
}

// ClipValue clips a value to the range [min, max].
func ClipValue(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// StabilizeLog computes log(value + LogEpsilon). Negative inputs are treated
// as zero.
func StabilizeLog(value float64) float64 {
	if value < 0 {
		value = 0
	}
	return math.Log(value + LogEpsilon)
}

// StabilizeExp computes exp with its argument clamped to ±MaxExpArgument.
func StabilizeExp(value float64) float64 {
	return math.Exp(ClipValue(value, -MaxExpArgument, MaxExpArgument))
}

// StableSigmoid evaluates 1/(1+exp(-z)) without overflow. The exponent is
// clamped and the branch keeps exp's argument non-positive.
func StableSigmoid(z float64) float64 {
	z = ClipValue(z, -MaxExpArgument, MaxExpArgument)
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1.0 + ez)
}
