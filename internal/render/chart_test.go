package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibesense/vibesense/pkg/models"
)

func TestFrequencyChartRendersHTML(t *testing.T) {
	points := make([]models.PlotPoint, 0, 100)
	for i := 0; i < 100; i++ {
		points = append(points, models.PlotPoint{Timestamp: float64(i), Frequency: float64(i % 7)})
	}
	view := models.SelectionView{
		SessionID:   "test-session",
		LowerTime:   10,
		UpperTime:   90,
		LowerLabel:  "start",
		UpperLabel:  "end",
		LockedPoint: &models.PlotPoint{Timestamp: 42, Frequency: 0},
	}

	var buf bytes.Buffer
	err := FrequencyChart(&buf, points, view, 0)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "frequency")
}

func TestFrequencyChartDownsamples(t *testing.T) {
	points := make([]models.PlotPoint, 5000)
	for i := range points {
		points[i] = models.PlotPoint{Timestamp: float64(i), Frequency: 1}
	}

	var buf bytes.Buffer
	err := FrequencyChart(&buf, points, models.SelectionView{SessionID: "s"}, 100)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "stride=50")
}
