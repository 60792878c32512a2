package models

// AttendanceMode selects which attendance endpoint a submission targets
type AttendanceMode string

const (
	ModeCheckIn  AttendanceMode = "check_in"
	ModeCheckOut AttendanceMode = "check_out"
)

// CheckInRecord holds the data gathered by the check-in wizard.
// It lives in memory for the duration of one wizard run and is
// discarded on successful submission or cancellation.
type CheckInRecord struct {
	Mode      AttendanceMode `json:"mode"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	Accuracy  *float64       `json:"accuracy"`

	// SelfieReference is the upload reference returned by the file
	// endpoint. Empty until the selfie upload succeeds.
	SelfieReference string `json:"selfieReference,omitempty"`

	Notes string `json:"notes,omitempty"`

	// Geofence evaluation against the active site assignment,
	// computed when the location fix is taken.
	InsideFence    bool    `json:"insideFence"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// HasLocation reports whether the location step completed.
func (r *CheckInRecord) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil && r.Accuracy != nil
}

// DeviceInfo identifies the submitting device on attendance requests
type DeviceInfo struct {
	DeviceID     string `json:"device_id"`
	AgentVersion string `json:"agent_version"`
	Platform     string `json:"platform"`
}

// AttendanceRequest is the body of POST attendance/check-in and
// attendance/check-out
type AttendanceRequest struct {
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	Accuracy        float64    `json:"accuracy"`
	Timestamp       string     `json:"timestamp"` // ISO-8601 UTC, millisecond precision
	SelfieReference string     `json:"selfie_reference"`
	Device          DeviceInfo `json:"device"`
	Notes           string     `json:"notes,omitempty"`
	InsideFence     bool       `json:"inside_fence"`
	DistanceMeters  float64    `json:"distance_meters"`
}

// AttendanceResult is the payload returned by the attendance endpoints
type AttendanceResult struct {
	AttendanceID string `json:"attendance_id"`
	RecordedAt   string `json:"recorded_at"`
	Status       string `json:"status"`
}
