package visualization

import (
	"iter"

	"github.com/YuminosukeSato/skratch/core/optimize"
	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// Frame is a serializable snapshot of one trajectory entry.
type Frame struct {
	Epoch        int       `json:"epoch"`
	Loss         float64   `json:"loss"`
	LearningRate float64   `json:"learning_rate"`
	Weights      []float64 `json:"weights"`
}

// FrameOf converts a trajectory entry.
func FrameOf(e optimize.Entry) Frame {
	return Frame{
		Epoch:        e.Epoch,
		Loss:         e.Loss,
		LearningRate: e.LearningRate,
		Weights:      append([]float64(nil), e.Weights...),
	}
}

// Record drains seq into frames. When the sequence ends with an error, the
// frames recorded so far are returned together with it so a diverged run
// can still be plotted up to the failure.
func Record(seq iter.Seq2[optimize.Entry, error]) ([]Frame, error) {
	var frames []Frame
	for entry, err := range seq {
		if err != nil {
			return frames, err
		}
		frames = append(frames, FrameOf(entry))
	}
	return frames, nil
}

// Losses returns the loss of every frame in order.
func Losses(frames []Frame) []float64 {
	losses := make([]float64, len(frames))
	for i, f := range frames {
		losses[i] = f.Loss
	}
	return losses
}

// Every keeps every k-th frame and always the last one. Long runs produce
// thousands of epochs; animations only need a handful.
func Every(frames []Frame, k int) ([]Frame, error) {
	if k < 1 {
		return nil, errors.NewConfigurationError("k", "must be at least 1", k)
	}
	var out []Frame
	for i := 0; i < len(frames); i += k {
		out = append(out, frames[i])
	}
	if n := len(frames); n > 0 && (n-1)%k != 0 {
		out = append(out, frames[n-1])
	}
	return out, nil
}
