package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/pkg/models"
)

// MockProjectRepository implements repository.ProjectRepository for testing
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetProject(ctx context.Context, email, name string) (*models.Project, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, email string) ([]models.Project, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectRepository) EditProject(ctx context.Context, email, name, newName, unit, subunit string) (*models.Project, error) {
	args := m.Called(ctx, email, name, newName, unit, subunit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) CreateModel(ctx context.Context, model *models.Model) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockProjectRepository) GetModel(ctx context.Context, email, project, name string) (*models.Model, error) {
	args := m.Called(ctx, email, project, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Model), args.Error(1)
}

func (m *MockProjectRepository) ListModels(ctx context.Context, email, project string) ([]models.Model, error) {
	args := m.Called(ctx, email, project)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Model), args.Error(1)
}

func newCreateProjectRequest(name, email, unit, subunit string) *models.CreateProjectRequest {
	req := &models.CreateProjectRequest{}
	req.Body.Name = name
	req.Body.Email = email
	req.Body.Unit = unit
	req.Body.Subunit = subunit
	return req
}

func TestCreateProject(t *testing.T) {
	tests := []struct {
		name        string
		unit        string
		subunit     string
		mockSetup   func(*MockProjectRepository)
		wantErr     bool
		wantUnit    string
		wantSubunit string
	}{
		{
			name:    "valid with aliases normalized",
			unit:    "MM",
			subunit: "peak-to-peak",
			mockSetup: func(repo *MockProjectRepository) {
				repo.On("CreateProject", mock.Anything, mock.AnythingOfType("*models.Project")).Return(nil)
			},
			wantUnit:    "mm",
			wantSubunit: "pp",
		},
		{
			name:    "valid canonical",
			unit:    "mil",
			subunit: "rms",
			mockSetup: func(repo *MockProjectRepository) {
				repo.On("CreateProject", mock.Anything, mock.AnythingOfType("*models.Project")).Return(nil)
			},
			wantUnit:    "mil",
			wantSubunit: "rms",
		},
		{
			name:      "invalid unit performs no insert",
			unit:      "inch",
			subunit:   "rms",
			mockSetup: func(repo *MockProjectRepository) {},
			wantErr:   true,
		},
		{
			name:      "invalid subunit performs no insert",
			unit:      "mm",
			subunit:   "average",
			mockSetup: func(repo *MockProjectRepository) {},
			wantErr:   true,
		},
		{
			name:    "duplicate project",
			unit:    "mm",
			subunit: "pk",
			mockSetup: func(repo *MockProjectRepository) {
				repo.On("CreateProject", mock.Anything, mock.Anything).
					Return(fmt.Errorf("project press-7: %w", repository.ErrDuplicate))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockProjectRepository{}
			tt.mockSetup(mockRepo)

			handler := NewProjectHandler(mockRepo)
			resp, err := handler.CreateProject(context.Background(),
				newCreateProjectRequest("press-7", "ops@example.com", tt.unit, tt.subunit))

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, resp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantUnit, resp.Body.Unit)
				assert.Equal(t, tt.wantSubunit, resp.Body.Subunit)
				assert.NotEmpty(t, resp.Body.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCreateProjectInvalidUnitMessage(t *testing.T) {
	handler := NewProjectHandler(&MockProjectRepository{})
	_, err := handler.CreateProject(context.Background(),
		newCreateProjectRequest("press-7", "ops@example.com", "inch", "rms"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mil, mm, um, v")
}

func TestEditProjectNormalizesUnits(t *testing.T) {
	mockRepo := &MockProjectRepository{}
	updated := &models.Project{Name: "press-8", Unit: "um", Subunit: "pk"}
	mockRepo.On("EditProject", mock.Anything, "ops@example.com", "press-7", "press-8", "um", "pk").
		Return(updated, nil)

	handler := NewProjectHandler(mockRepo)
	req := &models.EditProjectRequest{Name: "press-7"}
	req.Body.Email = "ops@example.com"
	req.Body.NewName = "press-8"
	req.Body.Unit = "UM"
	req.Body.Subunit = "peak"

	resp, err := handler.EditProject(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "press-8", resp.Body.Name)
	mockRepo.AssertExpectations(t)
}

func TestEditProjectNotFound(t *testing.T) {
	mockRepo := &MockProjectRepository{}
	mockRepo.On("EditProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("project ghost: %w", repository.ErrNotFound))

	handler := NewProjectHandler(mockRepo)
	req := &models.EditProjectRequest{Name: "ghost"}
	req.Body.Email = "ops@example.com"

	_, err := handler.EditProject(context.Background(), req)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCreateModel(t *testing.T) {
	mockRepo := &MockProjectRepository{}
	mockRepo.On("GetProject", mock.Anything, "ops@example.com", "press-7").
		Return(&models.Project{Name: "press-7"}, nil)
	mockRepo.On("CreateModel", mock.Anything, mock.AnythingOfType("*models.Model")).Return(nil)

	handler := NewProjectHandler(mockRepo)
	req := &models.CreateModelRequest{Project: "press-7"}
	req.Body.Email = "ops@example.com"
	req.Body.Name = "spindle"
	req.Body.NumberOfChannels = 4
	req.Body.SamplingRate = 2048

	resp, err := handler.CreateModel(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "spindle", resp.Body.Name)
	assert.Equal(t, "ops@example.com", resp.Body.Email)
	assert.Equal(t, 4, resp.Body.NumberOfChannels)
	mockRepo.AssertExpectations(t)
}
