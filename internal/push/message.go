package push

import (
	"encoding/json"
	"fmt"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// Type discriminates inbound push payloads. The set is closed: a
// payload with a type not listed here fails to decode instead of
// falling through silently, and Dispatch switches exhaustively.
type Type string

const (
	TypeSleepAlert   Type = "sleep_alert"
	TypeTaskAssigned Type = "task_assigned"
	TypeNotice       Type = "notice"
)

// Message is a decoded push payload; exactly one variant field is set
// according to Type.
type Message struct {
	Type       Type
	SleepAlert *models.SleepAlertQuestion
	Task       *models.Task
	Notice     *models.Notification
}

// Handler receives dispatched push messages
type Handler interface {
	HandleSleepAlert(question models.SleepAlertQuestion)
	HandleTaskAssigned(task models.Task)
	HandleNotice(notification models.Notification)
}

type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// rawSleepAlert mirrors the wire shape: options arrive as a
// JSON-encoded string holding an array of {id,text}.
type rawSleepAlert struct {
	SessionID       string `json:"session_id"`
	QuestionID      string `json:"question_id"`
	QuestionText    string `json:"question_text"`
	Options         string `json:"options"`
	DurationSeconds int    `json:"duration_seconds"`
}

// Decode is the single boundary where inbound push payloads become
// typed messages.
func Decode(data []byte) (*Message, error) {
	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed push message: %w", err)
	}

	switch Type(raw.Type) {
	case TypeSleepAlert:
		q, err := decodeSleepAlert(raw.Payload)
		if err != nil {
			return nil, err
		}
		return &Message{Type: TypeSleepAlert, SleepAlert: q}, nil
	case TypeTaskAssigned:
		var task models.Task
		if err := json.Unmarshal(raw.Payload, &task); err != nil {
			return nil, fmt.Errorf("malformed task payload: %w", err)
		}
		return &Message{Type: TypeTaskAssigned, Task: &task}, nil
	case TypeNotice:
		var note models.Notification
		if err := json.Unmarshal(raw.Payload, &note); err != nil {
			return nil, fmt.Errorf("malformed notice payload: %w", err)
		}
		return &Message{Type: TypeNotice, Notice: &note}, nil
	}

	return nil, fmt.Errorf("unknown push type %q", raw.Type)
}

func decodeSleepAlert(payload []byte) (*models.SleepAlertQuestion, error) {
	var raw rawSleepAlert
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("malformed sleep alert payload: %w", err)
	}

	q := models.SleepAlertQuestion{
		SessionID:       raw.SessionID,
		QuestionID:      raw.QuestionID,
		QuestionText:    raw.QuestionText,
		DurationSeconds: raw.DurationSeconds,
	}

	// Malformed or empty options leave the question with nothing to
	// select; the countdown still runs.
	if raw.Options != "" {
		if err := json.Unmarshal([]byte(raw.Options), &q.Options); err != nil {
			q.Options = nil
		}
	}

	return &q, nil
}

// Dispatch routes a decoded message to its handler method
func (m *Message) Dispatch(h Handler) {
	switch m.Type {
	case TypeSleepAlert:
		h.HandleSleepAlert(*m.SleepAlert)
	case TypeTaskAssigned:
		h.HandleTaskAssigned(*m.Task)
	case TypeNotice:
		h.HandleNotice(*m.Notice)
	}
}
