package optimize

import (
	"context"
	"iter"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/pkg/log"
)

// initialWeightScale is the standard deviation of randomly drawn starting
// weights.
const initialWeightScale = 0.01

// Problem bundles everything Step needs besides the training state. The
// sampler owns the only mutable piece (its generator), which advances once
// per epoch.
type Problem struct {
	Objective Objective
	X         mat.Matrix
	Y         mat.Vector
	Config    Config
	Optimizer Optimizer
	Sampler   *BatchSampler

	grad GradientFunc
	full Batch
}

// NewProblem validates the inputs and prepares a Problem. rng drives the
// epoch shuffles.
func NewProblem(obj Objective, X mat.Matrix, y mat.Vector, cfg Config, opt Optimizer, rng *rand.Rand) (*Problem, error) {
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.NewModelError("optimize.NewProblem", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("optimize.NewProblem", n, y.Len(), 0)
	}
	if err := cfg.Validate(n); err != nil {
		return nil, err
	}
	if opt == nil {
		opt = NewSGD()
	}
	sampler, err := NewBatchSampler(n, cfg.EffectiveBatchSize(n), rng)
	if err != nil {
		return nil, err
	}
	p := &Problem{
		Objective: obj,
		X:         X,
		Y:         y,
		Config:    cfg,
		Optimizer: opt,
		Sampler:   sampler,
		grad:      GradientOf(obj),
	}
	if sampler.BatchSize() == n {
		// Full-batch epochs see every row, so the gradient does not depend
		// on the shuffled order and the dataset can be used in place.
		p.full = Batch{X: mat.DenseCopyOf(X), Y: mat.VecDenseCopyOf(y), Indices: identity(n)}
	}
	return p, nil
}

func (p *Problem) batch(indices []int) (Batch, error) {
	if p.full.X != nil {
		return p.full, nil
	}
	return Gather(p.X, p.Y, indices)
}

// Step runs one epoch from state and returns the next state together with
// the trajectory entry it emits. The input state is not modified.
//
// An epoch reshuffles the samples, takes one optimizer step per batch and
// then evaluates the loss on the full dataset. A non-finite loss or weight
// yields a DivergenceError and a Diverged state; no entry is emitted for it.
func Step(state State, p *Problem) (State, Entry, error) {
	if state.Status.Terminal() {
		return state, Entry{}, errors.NewModelError("optimize.Step", "terminal state",
			errors.Newf("training already reached state %s", state.Status))
	}
	epoch := state.Iteration + 1
	lr := p.Config.schedule().Rate(epoch)
	if lr <= 0 || !errors.IsFinite(lr) {
		return state, Entry{}, errors.NewConfigurationError("learning_rate", "schedule produced a non-positive rate", lr)
	}

	next := State{
		Weights:      state.Weights,
		PreviousLoss: state.PreviousLoss,
		Loss:         math.NaN(),
		Iteration:    epoch,
		Status:       Stepping,
	}
	for _, indices := range p.Sampler.Epoch() {
		batch, err := p.batch(indices)
		if err != nil {
			return state, Entry{}, err
		}
		w, err := p.Optimizer.Step(p.grad, next.Weights, batch, lr)
		if err != nil {
			return state, Entry{}, err
		}
		next.Weights = w
		if err := errors.CheckWeights(epoch, w, state.Loss, lr); err != nil {
			next.Status = Diverged
			return next, Entry{}, err
		}
	}

	loss := p.Objective.Loss(next.Weights, p.X, p.Y)
	next.Loss = loss
	if err := errors.CheckLoss(epoch, loss, lr); err != nil {
		next.Status = Diverged
		return next, Entry{}, err
	}

	entry := Entry{
		Epoch:        epoch,
		Weights:      append([]float64(nil), next.Weights...),
		Loss:         loss,
		LearningRate: lr,
	}
	switch {
	case math.Abs(state.PreviousLoss-loss) < p.Config.Tolerance:
		next.Status = Converged
	case epoch >= p.Config.MaxIterations:
		next.Status = Exhausted
		next.PreviousLoss = loss
	default:
		next.PreviousLoss = loss
	}
	return next, entry, nil
}

// Trajectory is the lazy, finite sequence of entries produced by a fitting
// run. It is driven by Next on the caller's goroutine; each successful call
// runs exactly one epoch. A Trajectory is single-use: a new fit starts a new
// Trajectory.
//
// Abandoning a Trajectory before it finishes is safe and holds no
// resources.
type Trajectory struct {
	problem *Problem
	state   State
	entry   Entry
	err     error

	optimizer Optimizer
	logger    log.Logger
	name      string
	started   time.Time
}

// TrajectoryOption configures a Trajectory.
type TrajectoryOption func(*Trajectory)

// WithOptimizer replaces the default SGD optimizer.
func WithOptimizer(opt Optimizer) TrajectoryOption {
	return func(t *Trajectory) {
		t.optimizer = opt
	}
}

// WithLogger sets the logger used for progress and terminal-state records.
func WithLogger(logger log.Logger) TrajectoryOption {
	return func(t *Trajectory) {
		t.logger = logger
	}
}

// WithName sets the model name attached to log records and warnings.
func WithName(name string) TrajectoryOption {
	return func(t *Trajectory) {
		t.name = name
	}
}

// NewTrajectory validates the data and configuration and returns a
// Trajectory positioned before its first epoch. No gradient is computed
// here.
//
// initial may be nil, in which case the starting weights are drawn from
// N(0, 0.01²) with the configured seed. Otherwise its length must equal the
// number of columns of X.
func NewTrajectory(obj Objective, X mat.Matrix, y mat.Vector, initial []float64, cfg Config, opts ...TrajectoryOption) (*Trajectory, error) {
	t := &Trajectory{name: obj.Name()}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.GetLogger()
	}

	_, d := X.Dims()
	if initial != nil && len(initial) != d {
		return nil, errors.NewDimensionError("optimize.NewTrajectory", d, len(initial), 1)
	}

	rng := NewRand(cfg.Seed)
	problem, err := NewProblem(obj, X, y, cfg, t.optimizer, rng)
	if err != nil {
		return nil, err
	}
	if initial == nil {
		initial = make([]float64, d)
		for i := range initial {
			initial[i] = rng.NormFloat64() * initialWeightScale
		}
	}

	t.problem = problem
	t.state = NewState(initial)
	t.logger = t.logger.With(
		log.ComponentKey, "optimize",
		log.ModelNameKey, t.name,
	)
	return t, nil
}

// Next runs one epoch. It returns false once the trajectory has reached a
// terminal state or failed; Err distinguishes the two.
func (t *Trajectory) Next() bool {
	if !t.HasNext() {
		return false
	}
	if t.state.Status == Initialized {
		t.started = time.Now()
		t.logStart()
	}

	previous := t.state.PreviousLoss
	next, entry, err := Step(t.state, t.problem)
	t.state = next
	if err != nil {
		t.err = err
		// the caller receives err; reporting it is its decision
		t.logger.Debug("Optimization failed",
			"error", err.Error(),
			log.ErrorCodeKey, log.ErrorCode(err),
			log.IterationKey, next.Iteration,
			log.StatusKey, next.Status.String(),
		)
		return false
	}
	t.entry = entry

	if t.logger.Enabled(context.Background(), log.LevelDebug) {
		t.logger.Debug("Epoch completed",
			log.EpochKey, entry.Epoch,
			log.LossKey, entry.Loss,
			log.LossDeltaKey, math.Abs(previous-entry.Loss),
			log.LearningRateKey, entry.LearningRate,
		)
	}
	if next.Status.Terminal() {
		t.logFinish()
	}
	return true
}

func (t *Trajectory) logStart() {
	n, d := t.problem.X.Dims()
	t.logger.Debug("Optimization started",
		log.SamplesKey, n,
		log.FeaturesKey, d,
		log.BatchSizeKey, t.problem.Sampler.BatchSize(),
		log.LearningRateKey, t.problem.Config.LearningRate,
		log.ToleranceKey, t.problem.Config.Tolerance,
		log.MaxIterationsKey, t.problem.Config.MaxIterations,
	)
}

func (t *Trajectory) logFinish() {
	t.logger.Info("Optimization finished",
		log.StatusKey, t.state.Status.String(),
		log.IterationKey, t.state.Iteration,
		log.LossKey, t.state.Loss,
		log.DurationMsKey, time.Since(t.started).Milliseconds(),
	)
	if t.state.Status == Exhausted {
		errors.Warn(errors.NewConvergenceWarning(t.name, t.state.Iteration,
			"loss change did not fall below the tolerance; consider increasing max_iterations"))
	}
}

// HasNext reports whether another call to Next may produce an entry.
func (t *Trajectory) HasNext() bool {
	return t.err == nil && !t.state.Status.Terminal()
}

// Entry returns the entry produced by the latest successful Next.
func (t *Trajectory) Entry() Entry {
	return t.entry
}

// State returns the current training state.
func (t *Trajectory) State() State {
	return t.state
}

// Err returns the error that stopped the trajectory, if any.
func (t *Trajectory) Err() error {
	return t.err
}

// Run drives the trajectory to its terminal state without retaining the
// entries and returns the final state.
func (t *Trajectory) Run() (State, error) {
	for t.Next() {
	}
	return t.state, t.err
}

// Collect drives the trajectory to completion and returns every entry.
// On failure the entries produced before the error are returned with it.
func (t *Trajectory) Collect() ([]Entry, error) {
	var entries []Entry
	for t.Next() {
		entries = append(entries, t.entry)
	}
	return entries, t.err
}

// All returns the remaining entries as an iterator. A failure is yielded
// once as the final pair with a zero Entry.
//
//	for e, err := range traj.All() {
//	    if err != nil {
//	        return err
//	    }
//	    plotFrame(e.Weights)
//	}
func (t *Trajectory) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for t.Next() {
			if !yield(t.entry, nil) {
				return
			}
		}
		if t.err != nil {
			yield(Entry{}, t.err)
		}
	}
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
