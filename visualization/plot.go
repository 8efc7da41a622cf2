package visualization

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/skratch/pkg/errors"
	"github.com/YuminosukeSato/skratch/pkg/log"
)

// Size is the output size of a PNG.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize is 6x4 inches.
var DefaultSize = Size{Width: 6 * vg.Inch, Height: 4 * vg.Inch}

var (
	lossColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	curveColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// LossCurve は各エポックの損失をプロットする
func LossCurve(frames []Frame, title string) (*plot.Plot, error) {
	if len(frames) == 0 {
		return nil, errors.NewValueError("LossCurve", "no frames to plot")
	}

	pts := make(plotter.XYs, len(frames))
	for i, f := range frames {
		pts[i].X = float64(f.Epoch)
		pts[i].Y = f.Loss
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "loss"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build loss line")
	}
	line.Color = lossColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("loss", line)
	p.Legend.Top = true

	return p, nil
}

// SaveLossCurve writes the loss curve to path. The format follows the file
// extension (png, svg, pdf).
func SaveLossCurve(frames []Frame, path string, size Size) error {
	p, err := LossCurve(frames, "Training loss")
	if err != nil {
		return err
	}
	if err := p.Save(size.Width, size.Height, path); err != nil {
		return errors.Wrapf(err, "failed to save loss curve to %s", path)
	}
	log.GetLogger().Debug("Loss curve saved", "path", path, log.EpochKey, len(frames))
	return nil
}

// CurveFunc evaluates the model given by weights at x.
type CurveFunc func(weights []float64, x float64) float64

// FitFrame draws the samples (xs, ys) and the model curve of one frame over
// them.
func FitFrame(xs, ys []float64, frame Frame, curve CurveFunc) (*plot.Plot, error) {
	if len(xs) != len(ys) {
		return nil, errors.NewDimensionError("FitFrame", len(xs), len(ys), 0)
	}
	if len(xs) == 0 {
		return nil, errors.NewValueError("FitFrame", "no samples to plot")
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("epoch %d  loss %.4g", frame.Epoch, frame.Loss)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build scatter")
	}
	p.Add(scatter)

	// Function は描画範囲全体で評価されるため、データ範囲を先に固定する
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = plotter.XYRange(pts)

	fn := plotter.NewFunction(func(x float64) float64 {
		return curve(frame.Weights, x)
	})
	fn.Color = curveColor
	fn.Width = vg.Points(2)
	fn.Samples = 200
	p.Add(fn)

	return p, nil
}

// SaveFitFrames writes one PNG per frame into dir as frame_0000.png,
// frame_0001.png, ... and returns the written paths.
func SaveFitFrames(dir string, xs, ys []float64, frames []Frame, curve CurveFunc, size Size) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}

	paths := make([]string, 0, len(frames))
	for i, frame := range frames {
		p, err := FitFrame(xs, ys, frame, curve)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := p.Save(size.Width, size.Height, path); err != nil {
			return paths, errors.Wrapf(err, "failed to save frame %d", i)
		}
		paths = append(paths, path)
	}

	log.GetLogger().Info("Fit frames saved", "dir", dir, "frames", len(paths))
	return paths, nil
}

// Polynomial evaluates w[0] + w[1]x + w[2]x² + ... , the curve of a model
// fitted on PolynomialFeatures of a single input with an intercept.
func Polynomial(weights []float64, x float64) float64 {
	y := 0.0
	for i := len(weights) - 1; i >= 0; i-- {
		y = y*x + weights[i]
	}
	return y
}
