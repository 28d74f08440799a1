package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/vibesense/vibesense/internal/api/handlers"
	"github.com/vibesense/vibesense/internal/repository"
	"github.com/vibesense/vibesense/internal/selection"
	"github.com/vibesense/vibesense/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, humaAPI huma.API,
	projectRepo repository.ProjectRepository,
	tagRepo repository.TagRepository,
	historyRepo repository.HistoryRepository,
	captureStore storage.CaptureStore,
	manager *selection.Manager) {

	projectHandler := handlers.NewProjectHandler(projectRepo)
	tagHandler := handlers.NewTagHandler(tagRepo, projectRepo)
	historyHandler := handlers.NewHistoryHandler(historyRepo, projectRepo)
	selectionHandler := handlers.NewSelectionHandler(manager, historyRepo)
	captureHandler := handlers.NewCaptureHandler(captureStore)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "createProject",
		Method:      http.MethodPost,
		Path:        "/api/projects",
		Summary:     "Create a new project",
		Description: "Creates a project after validating and normalizing its measurement units",
		Tags:        []string{"Projects"},
	}, projectHandler.CreateProject)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "listProjects",
		Method:      http.MethodGet,
		Path:        "/api/projects",
		Summary:     "List projects",
		Description: "Returns the projects owned by an email",
		Tags:        []string{"Projects"},
	}, projectHandler.ListProjects)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "editProject",
		Method:      http.MethodPatch,
		Path:        "/api/projects/{name}",
		Summary:     "Edit a project",
		Description: "Updates a project; a rename propagates to all dependent records",
		Tags:        []string{"Projects"},
	}, projectHandler.EditProject)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "createModel",
		Method:      http.MethodPost,
		Path:        "/api/projects/{project}/models",
		Summary:     "Add a sensor model",
		Description: "Adds a named channel configuration to a project",
		Tags:        []string{"Models"},
	}, projectHandler.CreateModel)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "listModels",
		Method:      http.MethodGet,
		Path:        "/api/projects/{project}/models",
		Summary:     "List a project's models",
		Tags:        []string{"Models"},
	}, projectHandler.ListModels)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/projects/{project}/tags",
		Summary:     "Create a tag",
		Description: "Binds a model to an external data topic",
		Tags:        []string{"Tags"},
	}, tagHandler.CreateTag)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "editTag",
		Method:      http.MethodPatch,
		Path:        "/api/projects/{project}/tags/{tag}",
		Summary:     "Edit a tag",
		Description: "Updates a tag; a rename propagates to dependent history records",
		Tags:        []string{"Tags"},
	}, tagHandler.EditTag)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/projects/{project}/tags/{tag}",
		Summary:     "Delete a tag",
		Tags:        []string{"Tags"},
	}, tagHandler.DeleteTag)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "saveHistoryRecord",
		Method:      http.MethodPost,
		Path:        "/api/history",
		Summary:     "Save a captured data frame",
		Description: "Stores a history record, defaulting sampling metadata from the owning model",
		Tags:        []string{"History"},
	}, historyHandler.SaveRecord)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "listHistory",
		Method:      http.MethodGet,
		Path:        "/api/history",
		Summary:     "List history records",
		Description: "Returns the records in scope ordered by frame index",
		Tags:        []string{"History"},
	}, historyHandler.ListRecords)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "listHistoryFilenames",
		Method:      http.MethodGet,
		Path:        "/api/history/filenames",
		Summary:     "List capture filenames",
		Description: "Returns the distinct capture filenames in scope",
		Tags:        []string{"History"},
	}, historyHandler.ListFilenames)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "createSelection",
		Method:      http.MethodPost,
		Path:        "/api/selections",
		Summary:     "Open a selection session",
		Description: "Loads a capture file's samples and opens an interactive selection session",
		Tags:        []string{"Selections"},
	}, selectionHandler.CreateSelection)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "getSelection",
		Method:      http.MethodGet,
		Path:        "/api/selections/{id}",
		Summary:     "Get selection view state",
		Tags:        []string{"Selections"},
	}, selectionHandler.GetSelection)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "changeSelectionSlider",
		Method:      http.MethodPost,
		Path:        "/api/selections/{id}/slider",
		Summary:     "Move a range slider",
		Tags:        []string{"Selections"},
	}, selectionHandler.ChangeSlider)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "dragSelectionLine",
		Method:      http.MethodPost,
		Path:        "/api/selections/{id}/line",
		Summary:     "Drag a range line",
		Tags:        []string{"Selections"},
	}, selectionHandler.DragLine)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "selectionPointer",
		Method:      http.MethodPost,
		Path:        "/api/selections/{id}/pointer",
		Summary:     "Report a pointer event",
		Description: "Moves snap the crosshair to the nearest sample; clicks toggle the locked point",
		Tags:        []string{"Selections"},
	}, selectionHandler.Pointer)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "confirmSelection",
		Method:      http.MethodPost,
		Path:        "/api/selections/{id}/confirm",
		Summary:     "Confirm the selection",
		Description: "Materializes the one-shot selection payload from the record nearest the locked point",
		Tags:        []string{"Selections"},
	}, selectionHandler.Confirm)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "createCaptureUpload",
		Method:      http.MethodPost,
		Path:        "/api/captures",
		Summary:     "Request a capture upload URL",
		Tags:        []string{"Captures"},
	}, captureHandler.CreateUpload)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "getCaptureDownload",
		Method:      http.MethodGet,
		Path:        "/api/captures/download",
		Summary:     "Request a capture download URL",
		Tags:        []string{"Captures"},
	}, captureHandler.GetDownload)

	huma.Register(humaAPI, huma.Operation{
		OperationID: "deleteCapture",
		Method:      http.MethodDelete,
		Path:        "/api/captures",
		Summary:     "Delete a capture file",
		Tags:        []string{"Captures"},
	}, captureHandler.DeleteCapture)

	// HTML, file body and websocket endpoints are served raw on the router.
	router.Get("/api/captures/file", captureHandler.ServeFile)
	router.Get("/api/selections/{id}/chart", selectionHandler.Chart)
	router.Get("/api/selections/{id}/watch", selectionHandler.Watch)
}
