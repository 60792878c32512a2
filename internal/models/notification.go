package models

// Notification is an inbox entry delivered by the backend
type Notification struct {
	NotificationID string `json:"notification_id"`
	Title          string `json:"title"`
	Body           string `json:"body,omitempty"`
	Type           string `json:"type,omitempty"`
	Read           bool   `json:"read"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// DutyStatus is the employee's current on/off duty state
type DutyStatus struct {
	OnDuty    bool   `json:"on_duty"`
	Since     string `json:"since,omitempty"`
	SiteID    string `json:"site_id,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// LocationReport is the body of the periodic location report
type LocationReport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp string  `json:"timestamp"`
	DeviceID  string  `json:"device_id"`
}
