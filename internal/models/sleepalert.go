package models

// SleepAlertOption is one selectable answer of a wake-check question
type SleepAlertOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SleepAlertQuestion is the push-delivered wake-check payload
type SleepAlertQuestion struct {
	SessionID       string             `json:"session_id"`
	QuestionID      string             `json:"question_id"`
	QuestionText    string             `json:"question_text"`
	Options         []SleepAlertOption `json:"options"`
	DurationSeconds int                `json:"duration_seconds"`
}

// SleepAnswer is the body of POST sleep-tracking/submit-answer.
// SelectedOptionID is null when the countdown expired with no
// selection; that is a valid answer, not an error.
type SleepAnswer struct {
	SessionID        string  `json:"session_id"`
	QuestionID       string  `json:"question_id"`
	SelectedOptionID *string `json:"selected_option_id"`
	ElapsedSeconds   int     `json:"elapsed_seconds"`
}
