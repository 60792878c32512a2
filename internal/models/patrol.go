package models

// Patrol session status values as reported by the server. The server
// owns all transitions; the client only chooses which action to offer.
const (
	PatrolPlanned    = "PLANNED"
	PatrolInProgress = "IN_PROGRESS"
	PatrolCompleted  = "COMPLETED"
	PatrolCancelled  = "CANCELLED"
	PatrolExpired    = "EXPIRED"
)

// PatrolSession is a server-tracked patrol assignment
type PatrolSession struct {
	SessionID      string `json:"session_id"`
	RouteID        string `json:"route_id"`
	RouteName      string `json:"route_name"`
	Status         string `json:"status"`
	ScheduledStart string `json:"scheduled_start,omitempty"`
	ActualStart    string `json:"actual_start,omitempty"`
	ActualEnd      string `json:"actual_end,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// CanStart reports whether the start action should be offered.
// The server remains authoritative; this only gates the UI.
func (s *PatrolSession) CanStart() bool {
	return s.Status == PatrolPlanned
}

// CanEnd reports whether the end action should be offered.
func (s *PatrolSession) CanEnd() bool {
	return s.Status == PatrolInProgress
}

// PatrolStatus is a read-only checkpoint progress snapshot. Each fetch
// replaces the previous snapshot wholesale; there is no merging.
type PatrolStatus struct {
	Status               string   `json:"status"`
	TotalCheckpoints     int      `json:"total_checkpoints"`
	ScannedCheckpoints   []string `json:"scanned_checkpoints"`
	RemainingCheckpoints []string `json:"remaining_checkpoints"`
}
