package selection

import (
	"math"

	"github.com/vibesense/vibesense/pkg/models"
)

// clickEpsilon is the tolerance, on both axes, within which a click on the
// already-locked point clears the lock instead of moving it.
const clickEpsilon = 0.1

// Samples is an immutable flattened sample sequence, ordered by timestamp.
// It is built once per session from history records ordered by frame index.
type Samples struct {
	points []models.PlotPoint
}

// Flatten expands records into plot points. Point i of a record sits
// i/samplingRate seconds after the record's capture time; records without a
// sampling rate contribute a single point at their capture time.
func Flatten(records []models.HistoryRecord) Samples {
	var points []models.PlotPoint
	for _, record := range records {
		base := float64(record.CreatedAt.UnixNano()) / 1e9
		if record.SamplingRate <= 0 || len(record.Message) == 0 {
			points = append(points, models.PlotPoint{Timestamp: base, Frequency: record.MessageFrequency})
			continue
		}
		for i, value := range record.Message {
			points = append(points, models.PlotPoint{
				Timestamp: base + float64(i)/record.SamplingRate,
				Frequency: value,
			})
		}
	}
	return Samples{points: points}
}

// Len returns the number of loaded samples.
func (s Samples) Len() int { return len(s.points) }

// Points returns the underlying sample slice. Callers must not modify it.
func (s Samples) Points() []models.PlotPoint { return s.points }

// Extents returns the min/max timestamp and frequency across the samples.
func (s Samples) Extents() (minTime, maxTime, minFreq, maxFreq float64) {
	if len(s.points) == 0 {
		return 0, 0, 0, 0
	}
	minTime, maxTime = s.points[0].Timestamp, s.points[0].Timestamp
	minFreq, maxFreq = s.points[0].Frequency, s.points[0].Frequency
	for _, p := range s.points[1:] {
		minTime = math.Min(minTime, p.Timestamp)
		maxTime = math.Max(maxTime, p.Timestamp)
		minFreq = math.Min(minFreq, p.Frequency)
		maxFreq = math.Max(maxFreq, p.Frequency)
	}
	return minTime, maxTime, minFreq, maxFreq
}

// Nearest returns the sample whose timestamp is closest to x. Ties break to
// the first occurrence. The boolean is false only when no samples are loaded.
func (s Samples) Nearest(x float64) (models.PlotPoint, bool) {
	if len(s.points) == 0 {
		return models.PlotPoint{}, false
	}
	best := s.points[0]
	bestDist := math.Abs(best.Timestamp - x)
	for _, p := range s.points[1:] {
		d := math.Abs(p.Timestamp - x)
		if d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, true
}

// ToggleLock applies a click at (x, y): a click within clickEpsilon of the
// current locked point on both axes clears it; any other click locks the
// nearest sample. Returns the new locked point, or nil when cleared.
func ToggleLock(locked *models.PlotPoint, samples Samples, x, y float64) *models.PlotPoint {
	if locked != nil &&
		math.Abs(x-locked.Timestamp) <= clickEpsilon &&
		math.Abs(y-locked.Frequency) <= clickEpsilon {
		return nil
	}
	p, ok := samples.Nearest(x)
	if !ok {
		return locked
	}
	return &p
}
