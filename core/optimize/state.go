package optimize

import "math"

// Status is the fitting loop's position in its state machine:
//
//	Initialized -> Stepping -> {Converged | Exhausted | Diverged}
type Status int

const (
	// Initialized means no epoch has run yet.
	Initialized Status = iota
	// Stepping means at least one epoch ran and the loop can continue.
	Stepping
	// Converged means the loss change fell below the tolerance.
	Converged
	// Exhausted means MaxIterations epochs ran without converging.
	Exhausted
	// Diverged means the loss or weights became non-finite.
	Diverged
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Converged:
		return "converged"
	case Exhausted:
		return "exhausted"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further epochs may run.
func (s Status) Terminal() bool {
	return s == Converged || s == Exhausted || s == Diverged
}

// State is the mutable training state, passed into and returned from Step.
type State struct {
	Weights      []float64
	PreviousLoss float64 // +Inf before the first epoch
	Loss         float64 // loss after the latest epoch, NaN before the first
	Iteration    int     // epochs completed
	Status       Status
}

// NewState returns the initial state for the given starting weights. The
// slice is copied.
func NewState(weights []float64) State {
	w := make([]float64, len(weights))
	copy(w, weights)
	return State{
		Weights:      w,
		PreviousLoss: math.Inf(1),
		Loss:         math.NaN(),
		Status:       Initialized,
	}
}

// Entry is one element of the trajectory: the weights after an epoch and the
// full-dataset loss at those weights.
type Entry struct {
	Epoch        int
	Weights      []float64
	Loss         float64
	LearningRate float64
}
