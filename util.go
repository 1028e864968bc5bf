package meanrevert

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aouyang1/go-meanrevert/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/guptarohit/asciigraph"
)

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The input
// y is a slice of series that much have the same length as the input time slice. NaN values are
// left as gaps.
func LineTSeries(title string, seriesName []string, t []float64, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: "-"})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// LinePaths plots every simulated path on a shared time axis
func LinePaths(title string, paths []*timedataset.TimeDataset) *charts.Line {
	if len(paths) == 0 {
		return LineTSeries(title, nil, nil, nil)
	}
	names := make([]string, 0, len(paths))
	y := make([][]float64, 0, len(paths))
	for _, path := range paths {
		names = append(names, path.Name)
		y = append(y, path.Y)
	}
	return LineTSeries(title, names, paths[0].T, y)
}

// LineARFit plots the actual, fitted and forecasted values of an AR cross check. The first point is
// the first regression target, the forecast continues past the last actual value.
func LineARFit(name string, ar *ARReport) *charts.Line {
	n := len(ar.Actual) + len(ar.Forecast)
	t := timedataset.GenerateT(n, 1.0)

	actual := padNaN(ar.Actual, n)
	fitted := padNaN(ar.Fitted, n)
	forecast := make([]float64, n)
	for i := range forecast {
		forecast[i] = math.NaN()
	}
	for i, v := range ar.Forecast {
		forecast[len(ar.Actual)+i] = v
	}

	return LineTSeries(
		fmt.Sprintf("%s AR Fit", name),
		[]string{"Actual", "Fitted", "Forecast"},
		t,
		[][]float64{actual, fitted, forecast},
	)
}

// PlotReport renders the simulated paths and every AR cross check as an HTML page
func PlotReport(w io.Writer, r *Report) error {
	page := components.NewPage()
	page.AddCharts(LinePaths("Ornstein-Uhlenbeck Paths", r.Paths))
	for _, pr := range r.Processes {
		if pr.AR == nil {
			continue
		}
		page.AddCharts(LineARFit(pr.Name, pr.AR))
	}
	return page.Render(w)
}

// ASCIIPaths renders every simulated path as a terminal line chart
func ASCIIPaths(paths []*timedataset.TimeDataset, height, width int) string {
	if len(paths) == 0 {
		return ""
	}
	data := make([][]float64, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		data = append(data, path.Y)
		names = append(names, path.Name)
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(strings.Join(names, ", ")),
	)
}

func padNaN(y []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	copy(out, y)
	return out
}
