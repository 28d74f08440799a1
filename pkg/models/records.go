package models

import (
	"time"
)

// Project is a tenant-scoped monitoring project. Unit and Subunit are the
// normalized display unit for all channels in the project.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Unit      string    `json:"unit"`
	Subunit   string    `json:"subunit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Model is a named sensor channel configuration within a project. Email is
// the owning tenant; model names are unique per (email, project).
type Model struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Project          string    `json:"project"`
	Name             string    `json:"name"`
	NumberOfChannels int       `json:"number_of_channels"`
	TacoChannelCount int       `json:"taco_channel_count"`
	SamplingRate     float64   `json:"sampling_rate"`
	SamplingSize     int       `json:"sampling_size"`
	CreatedAt        time.Time `json:"created_at"`
}

// Tag binds a model to an external data topic within a project. Email is the
// owning tenant; tag names are unique per (email, project).
type Tag struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Project   string    `json:"project"`
	Model     string    `json:"model"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryScope is the tenant scoping key for history queries.
type HistoryScope struct {
	Project string `json:"project"`
	Model   string `json:"model"`
	Tag     string `json:"tag"`
	Email   string `json:"email"`
}

// HistoryRecord is one captured data frame. Message holds the flat numeric
// sample array for the frame; FrameIndex orders frames within a file.
type HistoryRecord struct {
	ID               string    `json:"id"`
	Project          string    `json:"project"`
	Model            string    `json:"model"`
	Tag              string    `json:"tag"`
	Email            string    `json:"email"`
	Filename         string    `json:"filename"`
	FrameIndex       int       `json:"frame_index"`
	Message          []float64 `json:"message"`
	NumberOfChannels int       `json:"number_of_channels"`
	TacoChannelCount int       `json:"taco_channel_count"`
	SamplingSize     int       `json:"sampling_size"`
	SamplingRate     float64   `json:"sampling_rate"`
	MessageFrequency float64   `json:"message_frequency"`
	CreatedAt        time.Time `json:"created_at"`
}

// PlotPoint is a single point on the frequency plot, timestamp in epoch
// seconds.
type PlotPoint struct {
	Timestamp float64 `json:"timestamp" doc:"Epoch seconds"`
	Frequency float64 `json:"frequency" doc:"Frequency value"`
}

// SelectionView is the derived view state of a selection session: everything
// a client needs to render the two sliders, the two draggable range lines,
// the range labels and the floating annotations.
type SelectionView struct {
	SessionID   string     `json:"session_id"`
	LowerSlider int        `json:"lower_slider" doc:"Lower slider position, rounded percentage"`
	UpperSlider int        `json:"upper_slider" doc:"Upper slider position, rounded percentage"`
	LowerPct    float64    `json:"lower_pct"`
	UpperPct    float64    `json:"upper_pct"`
	LowerTime   float64    `json:"lower_time" doc:"Absolute timestamp of the lower range line"`
	UpperTime   float64    `json:"upper_time" doc:"Absolute timestamp of the upper range line"`
	LowerLabel  string     `json:"lower_label"`
	UpperLabel  string     `json:"upper_label"`
	AnnotationY float64    `json:"annotation_y" doc:"Y position for the floating range annotations"`
	Crosshair   *PlotPoint `json:"crosshair,omitempty" doc:"Sample the crosshair is snapped to"`
	LockedPoint *PlotPoint `json:"locked_point,omitempty"`
	Confirmed   bool       `json:"confirmed"`
}

// SelectionPayload is the one-shot record materialized when a selection is
// confirmed. Metadata fields are copied verbatim from the history record
// nearest to the locked point.
type SelectionPayload struct {
	SessionID        string    `json:"session_id"`
	LowerPct         float64   `json:"lower_pct"`
	UpperPct         float64   `json:"upper_pct"`
	StartTime        float64   `json:"start_time" doc:"Absolute timestamp of the range start"`
	EndTime          float64   `json:"end_time" doc:"Absolute timestamp of the range end"`
	LockedPoint      PlotPoint `json:"locked_point"`
	RecordID         string    `json:"record_id"`
	Filename         string    `json:"filename"`
	FrameIndex       int       `json:"frame_index"`
	NumberOfChannels int       `json:"number_of_channels"`
	TacoChannelCount int       `json:"taco_channel_count"`
	SamplingSize     int       `json:"sampling_size"`
	SamplingRate     float64   `json:"sampling_rate"`
	MessageFrequency float64   `json:"message_frequency"`
	CreatedAt        time.Time `json:"created_at"`
}
