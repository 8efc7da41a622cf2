package optimize

import (
	"gonum.org/v1/gonum/mat"
)

// meanSquared is a minimal squared-error objective so the engine can be
// tested without the linear_model package.
type meanSquared struct {
	gradCalls int
}

func (m *meanSquared) Name() string { return "mean_squared" }

func (m *meanSquared) residual(w []float64, X mat.Matrix, y mat.Vector) *mat.VecDense {
	var r mat.VecDense
	r.MulVec(X, mat.NewVecDense(len(w), append([]float64(nil), w...)))
	r.SubVec(&r, y)
	return &r
}

func (m *meanSquared) Loss(w []float64, X mat.Matrix, y mat.Vector) float64 {
	r := m.residual(w, X, y)
	return mat.Dot(r, r) / float64(r.Len())
}

func (m *meanSquared) Gradient(w []float64, X mat.Matrix, y mat.Vector) []float64 {
	m.gradCalls++
	r := m.residual(w, X, y)
	var g mat.VecDense
	g.MulVec(X.T(), r)
	g.ScaleVec(2/float64(r.Len()), &g)
	return mat.Col(nil, 0, &g)
}

// lineData is y = 2x on x = 0..3.
func lineData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
	y := mat.NewVecDense(4, []float64{0, 2, 4, 6})
	return X, y
}

func seed(s int64) *int64 {
	return &s
}
