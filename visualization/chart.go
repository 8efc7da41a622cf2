package visualization

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/YuminosukeSato/skratch/pkg/errors"
)

// LossChart generates an echart line chart of loss and learning rate per
// epoch.
func LossChart(title string, frames []Frame) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "epoch"}),
	)

	epochs := make([]int, 0, len(frames))
	lossData := make([]opts.LineData, 0, len(frames))
	rateData := make([]opts.LineData, 0, len(frames))
	for _, f := range frames {
		epochs = append(epochs, f.Epoch)
		lossData = append(lossData, opts.LineData{Value: f.Loss})
		rateData = append(rateData, opts.LineData{Value: f.LearningRate})
	}

	line.SetXAxis(epochs).
		AddSeries("Loss", lossData).
		AddSeries("Learning rate", rateData)
	return line
}

// WeightsChart plots every weight component against the epoch.
func WeightsChart(title string, frames []Frame) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	if len(frames) == 0 {
		return line
	}

	epochs := make([]int, 0, len(frames))
	series := make([][]opts.LineData, len(frames[0].Weights))
	for _, f := range frames {
		epochs = append(epochs, f.Epoch)
		for j := range series {
			series[j] = append(series[j], opts.LineData{Value: f.Weights[j]})
		}
	}

	line.SetXAxis(epochs)
	for j, data := range series {
		line.AddSeries(weightName(j), data)
	}
	return line
}

func weightName(j int) string {
	return "w" + strconv.Itoa(j)
}

// RenderHTML writes a page with the loss chart and the weights chart.
func RenderHTML(w io.Writer, frames []Frame) error {
	if len(frames) == 0 {
		return errors.NewValueError("RenderHTML", "no frames to render")
	}
	page := components.NewPage()
	page.AddCharts(
		LossChart("Training loss", frames),
		WeightsChart("Weights", frames),
	)
	if err := page.Render(w); err != nil {
		return errors.Wrap(err, "failed to render chart page")
	}
	return nil
}
