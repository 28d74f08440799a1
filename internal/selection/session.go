package selection

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vibesense/vibesense/pkg/models"
)

var (
	// ErrSessionNotFound is returned for unknown or already-closed sessions.
	ErrSessionNotFound = errors.New("selection session not found")
	// ErrNoSamples is returned when the requested scope has no history.
	ErrNoSamples = errors.New("no samples loaded for selection")
	// ErrNoLockedPoint rejects confirmation before a point is locked.
	ErrNoLockedPoint = errors.New("no point selected: click a sample before confirming")
	// ErrAlreadyConfirmed rejects a second confirmation of the same session.
	ErrAlreadyConfirmed = errors.New("selection already confirmed")
)

// Event is pushed to watchers after every transition. Payload is non-nil
// exactly once, when the session is confirmed.
type Event struct {
	View    models.SelectionView     `json:"view"`
	Payload *models.SelectionPayload `json:"payload,omitempty"`
}

// Session is one interactive selection over a loaded capture file. All
// methods are safe for concurrent use; transitions are serialized by the
// session mutex.
type Session struct {
	ID       string
	Scope    models.HistoryScope
	Filename string

	mu        sync.Mutex
	records   []models.HistoryRecord
	samples   Samples
	state     State
	crosshair *models.PlotPoint
	locked    *models.PlotPoint
	confirmed bool
	watchers  map[int]chan Event
	nextWatch int
}

func newSession(scope models.HistoryScope, filename string, records []models.HistoryRecord) (*Session, error) {
	samples := Flatten(records)
	if samples.Len() == 0 {
		return nil, ErrNoSamples
	}
	minTime, maxTime, minFreq, maxFreq := samples.Extents()
	return &Session{
		ID:       uuid.New().String(),
		Scope:    scope,
		Filename: filename,
		records:  records,
		samples:  samples,
		state:    NewState(minTime, maxTime, minFreq, maxFreq),
		watchers: map[int]chan Event{},
	}, nil
}

// View returns the current view state.
func (s *Session) View() models.SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() models.SelectionView {
	view := s.state.View()
	view.SessionID = s.ID
	view.Crosshair = s.crosshair
	view.LockedPoint = s.locked
	view.Confirmed = s.confirmed
	return view
}

// Samples returns the loaded sample sequence.
func (s *Session) Samples() Samples {
	return s.samples
}

// SliderChanged applies a slider move and broadcasts the new view.
func (s *Session) SliderChanged(which Bound, value float64) (models.SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed {
		return models.SelectionView{}, ErrAlreadyConfirmed
	}
	s.state = s.state.SliderChanged(which, value)
	view := s.viewLocked()
	s.broadcastLocked(Event{View: view})
	return view, nil
}

// LineDragged applies a range-line drag and broadcasts the new view.
func (s *Session) LineDragged(which Bound, position float64) (models.SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed {
		return models.SelectionView{}, ErrAlreadyConfirmed
	}
	s.state = s.state.LineDragged(which, position)
	view := s.viewLocked()
	s.broadcastLocked(Event{View: view})
	return view, nil
}

// Pointer applies a pointer event: moves snap the crosshair to the nearest
// sample, clicks toggle the locked point.
func (s *Session) Pointer(x, y float64, click bool) (models.SelectionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed {
		return models.SelectionView{}, ErrAlreadyConfirmed
	}
	if click {
		s.locked = ToggleLock(s.locked, s.samples, x, y)
	} else if p, ok := s.samples.Nearest(x); ok {
		s.crosshair = &p
	}
	view := s.viewLocked()
	s.broadcastLocked(Event{View: view})
	return view, nil
}

// Confirm materializes the one-shot selection payload from the history
// record nearest to the locked point and completes the session.
func (s *Session) Confirm() (*models.SelectionPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirmed {
		return nil, ErrAlreadyConfirmed
	}
	if s.locked == nil {
		return nil, ErrNoLockedPoint
	}

	record := s.nearestRecordLocked(s.locked.Timestamp)

	payload := &models.SelectionPayload{
		SessionID:        s.ID,
		LowerPct:         s.state.LowerPct,
		UpperPct:         s.state.UpperPct,
		StartTime:        s.state.TimeAt(s.state.LowerPct),
		EndTime:          s.state.TimeAt(s.state.UpperPct),
		LockedPoint:      *s.locked,
		RecordID:         record.ID,
		Filename:         record.Filename,
		FrameIndex:       record.FrameIndex,
		NumberOfChannels: record.NumberOfChannels,
		TacoChannelCount: record.TacoChannelCount,
		SamplingSize:     record.SamplingSize,
		SamplingRate:     record.SamplingRate,
		MessageFrequency: record.MessageFrequency,
		CreatedAt:        time.Now(),
	}

	s.confirmed = true
	s.deliverLocked(Event{View: s.viewLocked(), Payload: payload})
	for id, ch := range s.watchers {
		close(ch)
		delete(s.watchers, id)
	}
	return payload, nil
}

// nearestRecordLocked resolves the record minimizing absolute timestamp
// distance across all loaded records, not just the flattened samples.
func (s *Session) nearestRecordLocked(x float64) models.HistoryRecord {
	best := s.records[0]
	bestDist := math.Abs(float64(best.CreatedAt.UnixNano())/1e9 - x)
	for _, record := range s.records[1:] {
		d := math.Abs(float64(record.CreatedAt.UnixNano())/1e9 - x)
		if d < bestDist {
			best = record
			bestDist = d
		}
	}
	return best
}

// Watch subscribes to view updates. The returned cancel function must be
// called unless the channel was closed by confirmation.
func (s *Session) Watch() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextWatch
	s.nextWatch++
	ch := make(chan Event, 16)
	if s.confirmed {
		close(ch)
		return ch, func() {}
	}
	s.watchers[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.watchers[id]; ok {
			close(c)
			delete(s.watchers, id)
		}
	}
}

// broadcastLocked pushes an event to all watchers, dropping it for watchers
// whose buffers are full.
func (s *Session) broadcastLocked(event Event) {
	for id, ch := range s.watchers {
		select {
		case ch <- event:
		default:
			log.Warn().Str("sessionID", s.ID).Int("watcher", id).Msg("Dropping selection event for slow watcher")
		}
	}
}

// deliverLocked pushes an event to every watcher unconditionally, dropping a
// watcher's oldest queued event to make room when its buffer is full. The
// confirmation payload is emitted exactly once, so it must never be dropped
// the way ordinary view events can be.
func (s *Session) deliverLocked(event Event) {
	for _, ch := range s.watchers {
		for delivered := false; !delivered; {
			select {
			case ch <- event:
				delivered = true
			default:
				select {
				case <-ch:
				default:
				}
			}
		}
	}
}

// Manager is the in-memory registry of live selection sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Open creates a session over the given records and registers it.
func (m *Manager) Open(scope models.HistoryScope, filename string, records []models.HistoryRecord) (*Session, error) {
	session, err := newSession(scope, filename, records)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	log.Info().Str("sessionID", session.ID).Str("project", scope.Project).Str("filename", filename).
		Int("samples", session.samples.Len()).Msg("Selection session opened")
	return session, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close removes a session from the registry.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
