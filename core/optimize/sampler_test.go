package optimize

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

func TestBatchSamplerCoversEverySampleOnce(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		batchSize int
		batches   int
		lastLen   int
	}{
		{"full batch", 10, 10, 1, 10},
		{"stochastic", 10, 1, 10, 1},
		{"uneven", 10, 3, 4, 1},
		{"even", 12, 4, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewBatchSampler(tt.n, tt.batchSize, NewRand(seed(7)))
			require.NoError(t, err)
			assert.Equal(t, tt.batches, s.NumBatches())

			for epoch := 0; epoch < 3; epoch++ {
				batches := s.Epoch()
				require.Len(t, batches, tt.batches)
				assert.Len(t, batches[len(batches)-1], tt.lastLen)

				var seen []int
				for _, b := range batches {
					seen = append(seen, b...)
				}
				sort.Ints(seen)
				for i, idx := range seen {
					assert.Equal(t, i, idx)
				}
			}
		})
	}
}

func TestBatchSamplerDeterministic(t *testing.T) {
	a, err := NewBatchSampler(20, 4, NewRand(seed(3)))
	require.NoError(t, err)
	b, err := NewBatchSampler(20, 4, NewRand(seed(3)))
	require.NoError(t, err)

	for epoch := 0; epoch < 5; epoch++ {
		assert.Equal(t, a.Epoch(), b.Epoch(), "epoch %d", epoch)
	}
}

func TestBatchSamplerReshuffles(t *testing.T) {
	s, err := NewBatchSampler(50, 50, NewRand(seed(11)))
	require.NoError(t, err)

	first := append([]int(nil), s.Epoch()[0]...)
	second := append([]int(nil), s.Epoch()[0]...)
	assert.NotEqual(t, first, second)
}

func TestNewBatchSamplerValidation(t *testing.T) {
	_, err := NewBatchSampler(0, 1, NewRand(nil))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = NewBatchSampler(5, 6, NewRand(nil))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))

	_, err = NewBatchSampler(5, 0, NewRand(nil))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfiguration))

	_, err = NewBatchSampler(5, 1, nil)
	assert.Error(t, err)
}
