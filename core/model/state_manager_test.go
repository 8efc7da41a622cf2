package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("LinearRegression", "Predict")
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))

	s.SetFitted(3, 100)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("LinearRegression", "Predict"))

	nFeatures, nSamples := s.Dimensions()
	assert.Equal(t, 3, nFeatures)
	assert.Equal(t, 100, nSamples)

	assert.NoError(t, s.RequireFeatures("Predict", 3))
	assert.True(t, errors.Is(s.RequireFeatures("Predict", 2), errors.ErrDimensionMismatch))

	s.Reset()
	assert.False(t, s.IsFitted())
	nFeatures, _ = s.Dimensions()
	assert.Zero(t, nFeatures)
}
