// Package selection implements interactive time-range selection over loaded
// frequency samples: a pure range state machine, nearest-sample snapping,
// and sessions that materialize a one-shot payload on confirmation.
package selection

import (
	"math"
	"time"

	"github.com/vibesense/vibesense/pkg/models"
)

// Bound identifies which end of the range an input moved.
type Bound string

const (
	Lower Bound = "lower"
	Upper Bound = "upper"
)

// State holds the selection range as percentages of the loaded time span,
// together with the span itself. Transitions are pure: every input produces
// a new State, and the view is recomputed from it afterwards. The invariant
// LowerPct <= UpperPct holds after every transition.
type State struct {
	LowerPct float64
	UpperPct float64
	MinTime  float64
	MaxTime  float64
	MinFreq  float64
	MaxFreq  float64
}

// NewState covers the full range of the given extents.
func NewState(minTime, maxTime, minFreq, maxFreq float64) State {
	return State{
		LowerPct: 0,
		UpperPct: 100,
		MinTime:  minTime,
		MaxTime:  maxTime,
		MinFreq:  minFreq,
		MaxFreq:  maxFreq,
	}
}

// span returns the loaded time span, treating a degenerate span as 1 so
// percentage conversion never divides by zero.
func (s State) span() float64 {
	d := s.MaxTime - s.MinTime
	if d == 0 {
		return 1
	}
	return d
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// SliderChanged applies a slider move. If the move violates the ordering
// invariant, the moved slider snaps to the other's value.
func (s State) SliderChanged(which Bound, value float64) State {
	value = clampPct(value)
	switch which {
	case Lower:
		if value > s.UpperPct {
			value = s.UpperPct
		}
		s.LowerPct = value
	case Upper:
		if value < s.LowerPct {
			value = s.LowerPct
		}
		s.UpperPct = value
	}
	return s
}

// LineDragged applies a range-line drag at an absolute position. If the move
// violates the ordering invariant, the bound that did not move is pulled to
// match.
func (s State) LineDragged(which Bound, position float64) State {
	pct := clampPct((position - s.MinTime) / s.span() * 100)
	switch which {
	case Lower:
		s.LowerPct = pct
		if s.UpperPct < pct {
			s.UpperPct = pct
		}
	case Upper:
		s.UpperPct = pct
		if s.LowerPct > pct {
			s.LowerPct = pct
		}
	}
	return s
}

// TimeAt converts a percentage back to an absolute timestamp.
func (s State) TimeAt(pct float64) float64 {
	return s.MinTime + (s.MaxTime-s.MinTime)*pct/100
}

// View projects the state into everything the client renders: integer slider
// positions, absolute line timestamps, formatted range labels, and the Y
// position for the floating annotations (5% of the frequency range below the
// maximum).
func (s State) View() models.SelectionView {
	lowerTime := s.TimeAt(s.LowerPct)
	upperTime := s.TimeAt(s.UpperPct)
	return models.SelectionView{
		LowerSlider: int(math.Round(s.LowerPct)),
		UpperSlider: int(math.Round(s.UpperPct)),
		LowerPct:    s.LowerPct,
		UpperPct:    s.UpperPct,
		LowerTime:   lowerTime,
		UpperTime:   upperTime,
		LowerLabel:  formatTimestamp(lowerTime),
		UpperLabel:  formatTimestamp(upperTime),
		AnnotationY: s.MaxFreq - 0.05*(s.MaxFreq-s.MinFreq),
	}
}

func formatTimestamp(epoch float64) string {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05.000")
}
