package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// MockHistoryRepository implements repository.HistoryRepository for testing
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) SaveRecord(ctx context.Context, record *models.HistoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListRecords(ctx context.Context, scope models.HistoryScope, filename string) ([]models.HistoryRecord, error) {
	args := m.Called(ctx, scope, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HistoryRecord), args.Error(1)
}

func (m *MockHistoryRepository) DistinctFilenames(ctx context.Context, scope models.HistoryScope) ([]string, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newSaveHistoryRequest() *models.SaveHistoryRequest {
	req := &models.SaveHistoryRequest{}
	req.Body.Project = "press-7"
	req.Body.Model = "spindle"
	req.Body.Tag = "vibe-ne"
	req.Body.Email = "ops@example.com"
	req.Body.Filename = "run1.csv"
	req.Body.FrameIndex = 3
	req.Body.Message = []float64{12.5, 13.0, 12.8}
	return req
}

func TestSaveRecordDefaultsFromModel(t *testing.T) {
	mockProjects := &MockProjectRepository{}
	mockProjects.On("GetModel", mock.Anything, "ops@example.com", "press-7", "spindle").
		Return(&models.Model{
			Email:            "ops@example.com",
			Project:          "press-7",
			Name:             "spindle",
			NumberOfChannels: 4,
			TacoChannelCount: 1,
			SamplingRate:     2048,
			SamplingSize:     1024,
		}, nil)

	mockHistory := &MockHistoryRepository{}
	mockHistory.On("SaveRecord", mock.Anything, mock.AnythingOfType("*models.HistoryRecord")).Return(nil)

	handler := NewHistoryHandler(mockHistory, mockProjects)
	resp, err := handler.SaveRecord(context.Background(), newSaveHistoryRequest())

	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Body.NumberOfChannels)
	assert.Equal(t, 1, resp.Body.TacoChannelCount)
	assert.Equal(t, 2048.0, resp.Body.SamplingRate)
	assert.Equal(t, 1024, resp.Body.SamplingSize)
	assert.False(t, resp.Body.CreatedAt.IsZero())
	mockHistory.AssertExpectations(t)
	mockProjects.AssertExpectations(t)
}

func TestSaveRecordKeepsExplicitMetadata(t *testing.T) {
	mockProjects := &MockProjectRepository{}
	mockProjects.On("GetModel", mock.Anything, "ops@example.com", "press-7", "spindle").
		Return(&models.Model{NumberOfChannels: 4, SamplingRate: 2048}, nil)

	mockHistory := &MockHistoryRepository{}
	mockHistory.On("SaveRecord", mock.Anything, mock.AnythingOfType("*models.HistoryRecord")).Return(nil)

	req := newSaveHistoryRequest()
	req.Body.NumberOfChannels = 8
	req.Body.SamplingRate = 512
	req.Body.CreatedAt = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	handler := NewHistoryHandler(mockHistory, mockProjects)
	resp, err := handler.SaveRecord(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, 8, resp.Body.NumberOfChannels)
	assert.Equal(t, 512.0, resp.Body.SamplingRate)
	assert.Equal(t, req.Body.CreatedAt, resp.Body.CreatedAt)
}

func TestSaveRecordUnknownModel(t *testing.T) {
	mockProjects := &MockProjectRepository{}
	mockProjects.On("GetModel", mock.Anything, "ops@example.com", "press-7", "spindle").
		Return(nil, fmt.Errorf("model spindle: %w", repository.ErrNotFound))

	mockHistory := &MockHistoryRepository{}

	handler := NewHistoryHandler(mockHistory, mockProjects)
	_, err := handler.SaveRecord(context.Background(), newSaveHistoryRequest())

	assert.Error(t, err)
	mockHistory.AssertNotCalled(t, "SaveRecord", mock.Anything, mock.Anything)
}

func TestListFilenames(t *testing.T) {
	scope := models.HistoryScope{Project: "press-7", Model: "spindle", Tag: "vibe-ne", Email: "ops@example.com"}

	t.Run("returns filenames in scope", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		mockHistory.On("DistinctFilenames", mock.Anything, scope).
			Return([]string{"run1.csv", "run2.csv"}, nil)

		handler := NewHistoryHandler(mockHistory, &MockProjectRepository{})
		resp, err := handler.ListFilenames(context.Background(), &models.ListFilenamesRequest{
			Project: scope.Project, Model: scope.Model, Tag: scope.Tag, Email: scope.Email,
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{"run1.csv", "run2.csv"}, resp.Body.Filenames)
	})

	t.Run("empty scope is not found", func(t *testing.T) {
		mockHistory := &MockHistoryRepository{}
		mockHistory.On("DistinctFilenames", mock.Anything, scope).
			Return(nil, fmt.Errorf("history: %w", repository.ErrNotFound))

		handler := NewHistoryHandler(mockHistory, &MockProjectRepository{})
		_, err := handler.ListFilenames(context.Background(), &models.ListFilenamesRequest{
			Project: scope.Project, Model: scope.Model, Tag: scope.Tag, Email: scope.Email,
		})

		assert.Error(t, err)
	})
}
