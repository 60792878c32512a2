package models

// Task status values as reported by the server
const (
	TaskAssigned   = "ASSIGNED"
	TaskAccepted   = "ACCEPTED"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// Task is a work item assigned to the employee
type Task struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority,omitempty"`
	DueAt       string `json:"due_at,omitempty"`
	AssignedAt  string `json:"assigned_at,omitempty"`
}

// TaskUpdateRequest is the body for task status transitions
type TaskUpdateRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}
