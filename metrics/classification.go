package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// Accuracy returns the fraction of exactly matching labels.
func Accuracy(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := range t {
		if t[i] == p[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(t)), nil
}

// AccuracyMatrix is Accuracy for n×1 matrices.
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := ColumnVector("AccuracyMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := ColumnVector("AccuracyMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(t, p)
}

// ClassificationError は誤分類率 (1 - Accuracy) を計算する
func ClassificationError(yTrue, yPred mat.Vector) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryLogLoss is the mean binary cross-entropy of predicted probabilities
// against 0/1 labels. Probabilities are clipped to [ε, 1-ε] with
// ε = errors.LogEpsilon.
func BinaryLogLoss(yTrue, yProb mat.Vector) (float64, error) {
	t, p, err := pair("BinaryLogLoss", yTrue, yProb)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range t {
		if t[i] != 0 && t[i] != 1 {
			return 0, errors.NewValueError("BinaryLogLoss", "yTrue must contain only 0 and 1")
		}
		q := errors.ClipValue(p[i], errors.LogEpsilon, 1-errors.LogEpsilon)
		sum -= t[i]*math.Log(q) + (1-t[i])*math.Log(1-q)
	}
	return sum / float64(len(t)), nil
}
