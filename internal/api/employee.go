package api

import (
	"context"
	"net/http"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// SubmitSleepAnswer posts a wake-check answer. Callers in the alert
// flow treat the result as best-effort telemetry.
func (c *Client) SubmitSleepAnswer(ctx context.Context, answer models.SleepAnswer) error {
	return c.do(ctx, http.MethodPost, "sleep-tracking/submit-answer", nil, answer, nil)
}

// ListTasks fetches the employee's assigned tasks
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "employee/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask transitions a task to a new status via the server
func (c *Client) UpdateTask(ctx context.Context, taskID string, update models.TaskUpdateRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "employee/tasks/"+taskID+"/status", nil, update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListNotifications fetches the employee's notification inbox
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notes []models.Notification
	if err := c.do(ctx, http.MethodGet, "employee/notifications", nil, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkNotificationRead marks one inbox entry as read
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPost, "employee/notifications/"+notificationID+"/read", nil, nil, nil)
}

// DutyStatus fetches the employee's current duty state
func (c *Client) DutyStatus(ctx context.Context) (*models.DutyStatus, error) {
	var status models.DutyStatus
	if err := c.do(ctx, http.MethodGet, "employee/duty", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

type setDutyRequest struct {
	OnDuty bool `json:"on_duty"`
}

// SetDuty reports going on or off duty
func (c *Client) SetDuty(ctx context.Context, onDuty bool) (*models.DutyStatus, error) {
	var status models.DutyStatus
	if err := c.do(ctx, http.MethodPost, "employee/duty", nil, setDutyRequest{OnDuty: onDuty}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ReportLocation posts one periodic location sample
func (c *Client) ReportLocation(ctx context.Context, report models.LocationReport) error {
	return c.do(ctx, http.MethodPost, "employee/location/report", nil, report, nil)
}
