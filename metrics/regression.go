// Package metrics provides the evaluation scores used by the models' Score
// methods and by callers comparing fits.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// pair は入力検証済みのyTrue/yPredをスライスとして取り出す
func pair(op string, yTrue, yPred mat.Vector) ([]float64, []float64, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return toSlice(yTrue), toSlice(yPred), nil
}

func toSlice(v mat.Vector) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// ColumnVector converts an n×1 matrix into a vector. Vectors are returned
// unchanged.
func ColumnVector(op string, m mat.Matrix) (mat.Vector, error) {
	if v, ok := m.(mat.Vector); ok {
		return v, nil
	}
	rows, cols := m.Dims()
	if cols != 1 {
		return nil, errors.NewDimensionError(op, 1, cols, 1)
	}
	v := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	floats.Sub(t, p)
	return floats.Dot(t, t) / float64(len(t)), nil
}

// MSEMatrix は行列形式の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := ColumnVector("MSEMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := ColumnVector("MSEMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred mat.Vector) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score は決定係数（R²）を計算する
//
// A constant yTrue has no variance to explain and yields a ValueError.
func R2Score(yTrue, yPred mat.Vector) (float64, error) {
	t, p, err := pair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	mean := stat.Mean(t, nil)
	var tss float64
	for _, v := range t {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	rss := floats.Distance(t, p, 2)
	return 1 - rss*rss/tss, nil
}

// R2ScoreMatrix is R2Score for n×1 matrices.
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, err := ColumnVector("R2ScoreMatrix", yTrue)
	if err != nil {
		return 0, err
	}
	p, err := ColumnVector("R2ScoreMatrix", yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(t, p)
}
