package optimize

import "math"

// Schedule yields the learning rate for a 1-based epoch number.
type Schedule interface {
	Rate(epoch int) float64
}

// Constant keeps the learning rate fixed.
type Constant float64

// Rate implements Schedule.
func (c Constant) Rate(int) float64 {
	return float64(c)
}

// InvScaling decays the rate as Eta0 / epoch^PowerT.
type InvScaling struct {
	Eta0   float64
	PowerT float64
}

// Rate implements Schedule.
func (s InvScaling) Rate(epoch int) float64 {
	if epoch < 1 {
		epoch = 1
	}
	return s.Eta0 / math.Pow(float64(epoch), s.PowerT)
}

// Decay decays the rate as Eta0 / (1 + Rate*(epoch-1)), so the first epoch
// uses Eta0.
type Decay struct {
	Eta0      float64
	DecayRate float64
}

// Rate implements Schedule.
func (d Decay) Rate(epoch int) float64 {
	if epoch < 1 {
		epoch = 1
	}
	return d.Eta0 / (1.0 + d.DecayRate*float64(epoch-1))
}
