package optimize

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// BatchSampler partitions the sample indices into batches, reshuffling at the
// start of every epoch so each sample is used exactly once per epoch.
type BatchSampler struct {
	nSamples  int
	batchSize int
	rng       *rand.Rand
	perm      []int
}

// NewBatchSampler creates a sampler over nSamples indices. The generator is
// owned by the caller; seeding it makes the batch order reproducible.
func NewBatchSampler(nSamples, batchSize int, rng *rand.Rand) (*BatchSampler, error) {
	if nSamples <= 0 {
		return nil, errors.NewModelError("optimize.NewBatchSampler", "empty data", errors.ErrEmptyData)
	}
	if batchSize < 1 || batchSize > nSamples {
		return nil, errors.NewConfigurationError("batch_size", "must be in [1, n_samples]", batchSize)
	}
	if rng == nil {
		return nil, errors.NewValueError("optimize.NewBatchSampler", "random generator must not be nil")
	}
	perm := make([]int, nSamples)
	for i := range perm {
		perm[i] = i
	}
	return &BatchSampler{nSamples: nSamples, batchSize: batchSize, rng: rng, perm: perm}, nil
}

// BatchSize returns the configured batch size.
func (s *BatchSampler) BatchSize() int {
	return s.batchSize
}

// NumBatches returns the number of batches per epoch.
func (s *BatchSampler) NumBatches() int {
	return (s.nSamples + s.batchSize - 1) / s.batchSize
}

// Epoch reshuffles and returns the batches for one epoch. The last batch is
// shorter when batchSize does not divide the sample count. The returned
// slices alias the sampler's permutation and are valid until the next call.
func (s *BatchSampler) Epoch() [][]int {
	s.rng.Shuffle(len(s.perm), func(i, j int) {
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	})
	batches := make([][]int, 0, s.NumBatches())
	for start := 0; start < s.nSamples; start += s.batchSize {
		end := min(start+s.batchSize, s.nSamples)
		batches = append(batches, s.perm[start:end])
	}
	return batches
}

// NewRand returns the generator used for weight initialization and
// shuffling. A nil seed draws one from the runtime's entropy source.
func NewRand(seed *int64) *rand.Rand {
	var s uint64
	if seed != nil {
		s = uint64(*seed)
	} else {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
