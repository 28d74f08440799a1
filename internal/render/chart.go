// Package render draws selection sessions as self-contained HTML charts.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/vibesense/vibesense/pkg/models"
)

// DefaultMaxPoints bounds the rendered payload size; larger sample sets are
// downsampled by stride.
const DefaultMaxPoints = 8000

// FrequencyChart renders the loaded samples as a line chart with the two
// selection range lines marked, plus the locked point when one exists.
func FrequencyChart(w io.Writer, points []models.PlotPoint, view models.SelectionView, maxPoints int) error {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	stride := 1
	if len(points) > maxPoints {
		stride = int(math.Ceil(float64(len(points)) / float64(maxPoints)))
	}

	data := make([]opts.LineData, 0, len(points)/stride+1)
	for i := 0; i < len(points); i += stride {
		p := points[i]
		data = append(data, opts.LineData{Value: []interface{}{p.Timestamp, p.Frequency}})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Frequency Plot", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Frequency History",
			Subtitle: fmt.Sprintf("session=%s points=%d stride=%d", view.SessionID, len(data), stride),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (epoch s)", NameLocation: "middle", NameGap: 30, Min: "dataMin", Max: "dataMax"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Frequency", NameLocation: "middle", NameGap: 40}),
	)

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithMarkLineNameXAxisItemOpts(
			opts.MarkLineNameXAxisItem{Name: view.LowerLabel, XAxis: view.LowerTime},
			opts.MarkLineNameXAxisItem{Name: view.UpperLabel, XAxis: view.UpperTime},
		),
	}
	if view.LockedPoint != nil {
		seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
			Name:       "selected",
			Coordinate: []interface{}{view.LockedPoint.Timestamp, view.LockedPoint.Frequency},
		}))
	}

	line.AddSeries("frequency", data, seriesOpts...)

	return line.Render(w)
}
