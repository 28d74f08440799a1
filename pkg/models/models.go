package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Body struct {
		Name    string `json:"name" minLength:"1" maxLength:"100" required:"true" doc:"Project name"`
		Email   string `json:"email" format:"email" required:"true" doc:"Owner email (tenant scope)"`
		Unit    string `json:"unit" required:"true" doc:"Measurement unit: mil, mm, um or v"`
		Subunit string `json:"subunit" required:"true" doc:"Measurement convention: pp, pk, rms or a known alias"`
	}
}

// ProjectResponse wraps a single project
type ProjectResponse struct {
	Body Project
}

// ListProjectsRequest represents a request to list a tenant's projects
type ListProjectsRequest struct {
	Email string `query:"email" required:"true" doc:"Owner email"`
}

// ListProjectsResponse wraps a project list
type ListProjectsResponse struct {
	Body struct {
		Projects []Project `json:"projects"`
	}
}

// EditProjectRequest represents a project update. Empty fields are left
// unchanged; NewName renames the project across all dependent records.
type EditProjectRequest struct {
	Name string `path:"name" doc:"Current project name"`
	Body struct {
		Email   string `json:"email" format:"email" required:"true" doc:"Owner email"`
		NewName string `json:"new_name,omitempty" maxLength:"100" doc:"New project name"`
		Unit    string `json:"unit,omitempty" doc:"New measurement unit"`
		Subunit string `json:"subunit,omitempty" doc:"New measurement convention"`
	}
}

// CreateModelRequest represents a request to add a sensor model to a project
type CreateModelRequest struct {
	Project string `path:"project" doc:"Project name"`
	Body    struct {
		Email            string  `json:"email" format:"email" required:"true" doc:"Owner email"`
		Name             string  `json:"name" minLength:"1" maxLength:"100" required:"true" doc:"Model name"`
		NumberOfChannels int     `json:"number_of_channels" minimum:"1" maximum:"64" required:"true" doc:"Vibration channel count"`
		TacoChannelCount int     `json:"taco_channel_count" minimum:"0" maximum:"16" doc:"Tachometer channel count"`
		SamplingRate     float64 `json:"sampling_rate" minimum:"0" doc:"Samples per second"`
		SamplingSize     int     `json:"sampling_size" minimum:"0" doc:"Samples per frame"`
	}
}

// ModelResponse wraps a single model
type ModelResponse struct {
	Body Model
}

// ListModelsRequest represents a request to list a project's models
type ListModelsRequest struct {
	Project string `path:"project" doc:"Project name"`
	Email   string `query:"email" required:"true" doc:"Owner email"`
}

// ListModelsResponse wraps a model list
type ListModelsResponse struct {
	Body struct {
		Models []Model `json:"models"`
	}
}

// CreateTagRequest represents a request to bind a model to a data topic
type CreateTagRequest struct {
	Project string `path:"project" doc:"Project name"`
	Body    struct {
		Email string `json:"email" format:"email" required:"true" doc:"Owner email"`
		Model string `json:"model" minLength:"1" required:"true" doc:"Model name"`
		Name  string `json:"name" minLength:"1" maxLength:"100" required:"true" doc:"Tag name"`
		Topic string `json:"topic" minLength:"1" required:"true" doc:"External data topic"`
	}
}

// TagResponse wraps a single tag
type TagResponse struct {
	Body Tag
}

// EditTagRequest represents a tag update. NewName renames the tag across
// dependent history records.
type EditTagRequest struct {
	Project string `path:"project" doc:"Project name"`
	Tag     string `path:"tag" doc:"Current tag name"`
	Body    struct {
		Email   string `json:"email" format:"email" required:"true" doc:"Owner email"`
		NewName string `json:"new_name,omitempty" maxLength:"100" doc:"New tag name"`
		Topic   string `json:"topic,omitempty" doc:"New data topic"`
	}
}

// DeleteTagRequest represents a tag deletion
type DeleteTagRequest struct {
	Project string `path:"project" doc:"Project name"`
	Tag     string `path:"tag" doc:"Tag name"`
	Email   string `query:"email" required:"true" doc:"Owner email"`
}

// MessageResponse is a generic confirmation response
type MessageResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// SaveHistoryRequest represents a request to store a captured data frame
type SaveHistoryRequest struct {
	Body struct {
		Project          string    `json:"project" minLength:"1" required:"true" doc:"Project name"`
		Model            string    `json:"model" minLength:"1" required:"true" doc:"Model name"`
		Tag              string    `json:"tag" minLength:"1" required:"true" doc:"Tag name"`
		Email            string    `json:"email" format:"email" required:"true" doc:"Owner email"`
		Filename         string    `json:"filename" minLength:"1" required:"true" doc:"Source capture filename"`
		FrameIndex       int       `json:"frame_index" minimum:"0" required:"true" doc:"Frame sequence number within the file"`
		Message          []float64 `json:"message" minItems:"1" required:"true" doc:"Flat numeric sample array"`
		NumberOfChannels int       `json:"number_of_channels" minimum:"0" doc:"Vibration channel count; defaults from the model"`
		TacoChannelCount int       `json:"taco_channel_count" minimum:"0" doc:"Tachometer channel count; defaults from the model"`
		SamplingSize     int       `json:"sampling_size" minimum:"0" doc:"Samples per frame; defaults from the model"`
		SamplingRate     float64   `json:"sampling_rate" minimum:"0" doc:"Samples per second; defaults from the model"`
		MessageFrequency float64   `json:"message_frequency" doc:"Dominant frequency of the frame"`
		CreatedAt        time.Time `json:"created_at,omitempty" doc:"Capture time; defaults to now"`
	}
}

// HistoryRecordResponse wraps a single history record
type HistoryRecordResponse struct {
	Body HistoryRecord
}

// ListHistoryRequest represents a scoped history query
type ListHistoryRequest struct {
	Project  string `query:"project" required:"true" doc:"Project name"`
	Model    string `query:"model" required:"true" doc:"Model name"`
	Tag      string `query:"tag" required:"true" doc:"Tag name"`
	Email    string `query:"email" required:"true" doc:"Owner email"`
	Filename string `query:"filename,omitempty" doc:"Restrict to one capture file"`
}

// ListHistoryResponse wraps an ordered history record list
type ListHistoryResponse struct {
	Body struct {
		Records []HistoryRecord `json:"records" doc:"Records ordered by frame index"`
	}
}

// ListFilenamesRequest represents a distinct-filename query
type ListFilenamesRequest struct {
	Project string `query:"project" required:"true" doc:"Project name"`
	Model   string `query:"model" required:"true" doc:"Model name"`
	Tag     string `query:"tag" required:"true" doc:"Tag name"`
	Email   string `query:"email" required:"true" doc:"Owner email"`
}

// ListFilenamesResponse wraps the distinct capture filenames in scope
type ListFilenamesResponse struct {
	Body struct {
		Filenames []string `json:"filenames"`
	}
}

// CreateSelectionRequest opens a selection session over one capture file
type CreateSelectionRequest struct {
	Body struct {
		Project  string `json:"project" minLength:"1" required:"true" doc:"Project name"`
		Model    string `json:"model" minLength:"1" required:"true" doc:"Model name"`
		Tag      string `json:"tag" minLength:"1" required:"true" doc:"Tag name"`
		Email    string `json:"email" format:"email" required:"true" doc:"Owner email"`
		Filename string `json:"filename" minLength:"1" required:"true" doc:"Capture file to load"`
	}
}

// SelectionViewResponse wraps the current session view state
type SelectionViewResponse struct {
	Body SelectionView
}

// GetSelectionRequest addresses a selection session
type GetSelectionRequest struct {
	ID string `path:"id" doc:"Selection session ID"`
}

// SliderChangeRequest moves one of the two range sliders
type SliderChangeRequest struct {
	ID   string `path:"id" doc:"Selection session ID"`
	Body struct {
		Which string  `json:"which" enum:"lower,upper" required:"true" doc:"Which slider moved"`
		Value float64 `json:"value" minimum:"0" maximum:"100" required:"true" doc:"New slider value as a percentage"`
	}
}

// LineDragRequest moves one of the two draggable range lines
type LineDragRequest struct {
	ID   string `path:"id" doc:"Selection session ID"`
	Body struct {
		Which    string  `json:"which" enum:"lower,upper" required:"true" doc:"Which line moved"`
		Position float64 `json:"position" required:"true" doc:"Absolute timestamp the line was dragged to"`
	}
}

// PointerEventRequest reports a pointer move or click on the plot
type PointerEventRequest struct {
	ID   string `path:"id" doc:"Selection session ID"`
	Body struct {
		X     float64 `json:"x" required:"true" doc:"Pointer timestamp coordinate"`
		Y     float64 `json:"y" doc:"Pointer frequency coordinate"`
		Click bool    `json:"click" doc:"True for a click, false for a move"`
	}
}

// ConfirmSelectionRequest finalizes a session
type ConfirmSelectionRequest struct {
	ID string `path:"id" doc:"Selection session ID"`
}

// SelectionPayloadResponse wraps the one-shot selection payload
type SelectionPayloadResponse struct {
	Body SelectionPayload
}

// CreateCaptureUploadRequest asks for a pre-signed capture file upload URL
type CreateCaptureUploadRequest struct {
	Body struct {
		Filename    string `json:"filename" minLength:"1" required:"true" doc:"Capture filename"`
		ContentType string `json:"content_type" enum:"application/octet-stream,text/csv,application/x-hdf5" required:"true" doc:"Capture file content type"`
		FileSize    int64  `json:"file_size" minimum:"1" required:"true" doc:"Capture file size in bytes"`
	}
}

// CreateCaptureUploadResponse carries the pre-signed upload URL
type CreateCaptureUploadResponse struct {
	Body struct {
		Key       string `json:"key" doc:"Storage key for the capture file"`
		UploadURL string `json:"upload_url" doc:"Pre-signed upload URL"`
		ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}

// GetCaptureDownloadRequest asks for a pre-signed capture download URL
type GetCaptureDownloadRequest struct {
	Key string `query:"key" required:"true" doc:"Storage key of the capture file"`
}

// DeleteCaptureRequest removes a capture file from storage
type DeleteCaptureRequest struct {
	Key string `query:"key" required:"true" doc:"Storage key of the capture file"`
}

// GetCaptureDownloadResponse carries the pre-signed download URL
type GetCaptureDownloadResponse struct {
	Body struct {
		DownloadURL string `json:"download_url" doc:"Pre-signed download URL"`
	}
}
