package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vibesense/vibesense/internal/selection"
	"github.com/vibesense/vibesense/pkg/models"
)

var selectionScope = models.HistoryScope{
	Project: "press-7",
	Model:   "spindle",
	Tag:     "vibe-ne",
	Email:   "ops@example.com",
}

func selectionRecords(base time.Time) []models.HistoryRecord {
	return []models.HistoryRecord{
		{
			ID:               "rec-1",
			Project:          selectionScope.Project,
			Model:            selectionScope.Model,
			Tag:              selectionScope.Tag,
			Email:            selectionScope.Email,
			Filename:         "run1.csv",
			FrameIndex:       0,
			Message:          []float64{10, 20, 30},
			NumberOfChannels: 4,
			SamplingRate:     2,
			SamplingSize:     3,
			CreatedAt:        base,
		},
		{
			ID:           "rec-2",
			Project:      selectionScope.Project,
			Model:        selectionScope.Model,
			Tag:          selectionScope.Tag,
			Email:        selectionScope.Email,
			Filename:     "run1.csv",
			FrameIndex:   1,
			Message:      []float64{40, 50},
			SamplingRate: 2,
			CreatedAt:    base.Add(10 * time.Second),
		},
	}
}

func newSelectionHandler(t *testing.T, records []models.HistoryRecord) (*SelectionHandler, string) {
	t.Helper()

	mockHistory := &MockHistoryRepository{}
	mockHistory.On("ListRecords", mock.Anything, selectionScope, "run1.csv").Return(records, nil)

	handler := NewSelectionHandler(selection.NewManager(), mockHistory)

	req := &models.CreateSelectionRequest{}
	req.Body.Project = selectionScope.Project
	req.Body.Model = selectionScope.Model
	req.Body.Tag = selectionScope.Tag
	req.Body.Email = selectionScope.Email
	req.Body.Filename = "run1.csv"

	resp, err := handler.CreateSelection(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Body.SessionID)
	assert.Equal(t, 0, resp.Body.LowerSlider)
	assert.Equal(t, 100, resp.Body.UpperSlider)

	return handler, resp.Body.SessionID
}

func TestCreateSelectionNoRecords(t *testing.T) {
	mockHistory := &MockHistoryRepository{}
	mockHistory.On("ListRecords", mock.Anything, selectionScope, "run1.csv").
		Return([]models.HistoryRecord{}, nil)

	handler := NewSelectionHandler(selection.NewManager(), mockHistory)

	req := &models.CreateSelectionRequest{}
	req.Body.Project = selectionScope.Project
	req.Body.Model = selectionScope.Model
	req.Body.Tag = selectionScope.Tag
	req.Body.Email = selectionScope.Email
	req.Body.Filename = "run1.csv"

	_, err := handler.CreateSelection(context.Background(), req)
	assert.Error(t, err)
}

func TestGetSelectionUnknownSession(t *testing.T) {
	handler := NewSelectionHandler(selection.NewManager(), &MockHistoryRepository{})
	_, err := handler.GetSelection(context.Background(), &models.GetSelectionRequest{ID: "nope"})
	assert.Error(t, err)
}

func TestSliderCrossingSnapsMovedBound(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	handler, id := newSelectionHandler(t, selectionRecords(base))

	lower := &models.SliderChangeRequest{ID: id}
	lower.Body.Which = "lower"
	lower.Body.Value = 40
	resp, err := handler.ChangeSlider(context.Background(), lower)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Body.LowerSlider)

	// Dragging the upper slider below the lower bound snaps it onto the
	// lower bound instead of crossing it.
	upper := &models.SliderChangeRequest{ID: id}
	upper.Body.Which = "upper"
	upper.Body.Value = 20
	resp, err = handler.ChangeSlider(context.Background(), upper)
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Body.UpperSlider)
	assert.Equal(t, 40, resp.Body.LowerSlider)
}

func TestLineDragUpdatesPercentages(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	handler, id := newSelectionHandler(t, selectionRecords(base))

	// The session spans base..base+10.5s; dragging the lower line to the
	// 25% mark of that span moves the lower percentage accordingly.
	req := &models.LineDragRequest{ID: id}
	req.Body.Which = "lower"
	req.Body.Position = float64(base.Unix()) + 10.5*0.25

	resp, err := handler.DragLine(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 25, resp.Body.LowerPct, 0.5)
	assert.Equal(t, 100, resp.Body.UpperSlider)
}

func TestPointerAndConfirmFlow(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	handler, id := newSelectionHandler(t, selectionRecords(base))
	ctx := context.Background()

	// Confirming before locking a point is rejected.
	_, err := handler.Confirm(ctx, &models.ConfirmSelectionRequest{ID: id})
	require.Error(t, err)

	// A move snaps the crosshair to the nearest sample.
	move := &models.PointerEventRequest{ID: id}
	move.Body.X = float64(base.Unix()) + 0.4
	move.Body.Y = 19.8
	resp, err := handler.Pointer(ctx, move)
	require.NoError(t, err)
	require.NotNil(t, resp.Body.Crosshair)
	assert.InDelta(t, float64(base.Unix())+0.5, resp.Body.Crosshair.Timestamp, 1e-9)
	assert.Equal(t, 20.0, resp.Body.Crosshair.Frequency)
	assert.Nil(t, resp.Body.LockedPoint)

	// A click on the snapped sample locks it.
	click := &models.PointerEventRequest{ID: id}
	click.Body.X = float64(base.Unix()) + 0.45
	click.Body.Y = 20.05
	click.Body.Click = true
	resp, err = handler.Pointer(ctx, click)
	require.NoError(t, err)
	require.NotNil(t, resp.Body.LockedPoint)
	assert.Equal(t, 20.0, resp.Body.LockedPoint.Frequency)

	// The payload copies its metadata from the record nearest the locked
	// point, which is the first frame here.
	payload, err := handler.Confirm(ctx, &models.ConfirmSelectionRequest{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", payload.Body.RecordID)
	assert.Equal(t, 0, payload.Body.FrameIndex)
	assert.Equal(t, 4, payload.Body.NumberOfChannels)
	assert.Equal(t, "run1.csv", payload.Body.Filename)
	assert.Equal(t, 20.0, payload.Body.LockedPoint.Frequency)

	// The session is gone once confirmed.
	_, err = handler.GetSelection(ctx, &models.GetSelectionRequest{ID: id})
	assert.Error(t, err)
}

func TestClickTogglesLock(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	handler, id := newSelectionHandler(t, selectionRecords(base))
	ctx := context.Background()

	click := &models.PointerEventRequest{ID: id}
	click.Body.X = float64(base.Unix()) + 0.5
	click.Body.Y = 20
	click.Body.Click = true
	resp, err := handler.Pointer(ctx, click)
	require.NoError(t, err)
	require.NotNil(t, resp.Body.LockedPoint)

	// A click far from the locked point moves the lock to the nearest
	// sample instead of clearing it.
	far := &models.PointerEventRequest{ID: id}
	far.Body.X = float64(base.Unix()) + 10
	far.Body.Y = 50
	far.Body.Click = true
	resp, err = handler.Pointer(ctx, far)
	require.NoError(t, err)
	require.NotNil(t, resp.Body.LockedPoint)
	assert.Equal(t, 40.0, resp.Body.LockedPoint.Frequency)

	// Clicking the locked point again clears it.
	again := &models.PointerEventRequest{ID: id}
	again.Body.X = float64(base.Unix()) + 10
	again.Body.Y = 40
	again.Body.Click = true
	resp, err = handler.Pointer(ctx, again)
	require.NoError(t, err)
	assert.Nil(t, resp.Body.LockedPoint)
}
