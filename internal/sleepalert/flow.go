package sleepalert

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// State is the flow's position: Presented until a choice is made,
// Answered once an option is highlighted, Submitted terminally.
type State int

const (
	StatePresented State = iota
	StateAnswered
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StatePresented:
		return "presented"
	case StateAnswered:
		return "answered"
	case StateSubmitted:
		return "submitted"
	}
	return "unknown"
}

var (
	// ErrUnknownOption rejects a selection that is not among the
	// question's options.
	ErrUnknownOption = errors.New("unknown option")
	// ErrAlreadySubmitted rejects selection changes after submission.
	ErrAlreadySubmitted = errors.New("answer already submitted")
)

// Submitter delivers the answer payload. The flow treats delivery as
// best-effort telemetry: errors are logged and swallowed.
type Submitter func(ctx context.Context, answer models.SleepAnswer) error

// Flow runs one wake-check question: present, count down once per
// second, submit exactly once on user action or timeout, whichever
// comes first.
type Flow struct {
	question models.SleepAlertQuestion
	submit   Submitter

	mu        sync.Mutex
	state     State
	selected  *string
	remaining int
	submitted bool

	presented time.Time
	tick      time.Duration
	done      chan struct{}
}

// New presents a question. The countdown is armed when Run starts.
func New(question models.SleepAlertQuestion, submit Submitter) *Flow {
	return &Flow{
		question:  question,
		submit:    submit,
		remaining: question.DurationSeconds,
		presented: time.Now(),
		tick:      time.Second,
		done:      make(chan struct{}),
	}
}

// Run drives the countdown until submission or cancellation. A
// cancelled context (the enclosing screen going away) drops the flow
// without submitting.
func (f *Flow) Run(ctx context.Context) {
	ticker := time.NewTicker(f.tick)
	defer ticker.Stop()

	for {
		f.mu.Lock()
		remaining := f.remaining
		f.mu.Unlock()
		if remaining <= 0 {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-f.done:
			return
		case <-ticker.C:
			f.mu.Lock()
			f.remaining--
			f.mu.Unlock()
		}
	}

	f.finish()
}

// Select highlights one option. Re-selecting before submission simply
// replaces the previous choice; no network call happens here.
func (f *Flow) Select(optionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitted {
		return ErrAlreadySubmitted
	}
	if !f.hasOption(optionID) {
		return ErrUnknownOption
	}
	f.selected = &optionID
	f.state = StateAnswered
	return nil
}

// Submit is the explicit user submit action
func (f *Flow) Submit() {
	f.finish()
}

// State returns the flow's current state
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Remaining returns the countdown's remaining seconds
func (f *Flow) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remaining
}

// Done is closed once the flow reaches its terminal state
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// finish performs the single submission. The guard makes the manual
// submit and the timeout race harmless: whichever path arrives second
// is a no-op. A timeout with no selection submits a null option; that
// is a valid answer, not an error.
func (f *Flow) finish() {
	f.mu.Lock()
	if f.submitted {
		f.mu.Unlock()
		return
	}
	f.submitted = true
	f.state = StateSubmitted
	answer := models.SleepAnswer{
		SessionID:        f.question.SessionID,
		QuestionID:       f.question.QuestionID,
		SelectedOptionID: f.selected,
		ElapsedSeconds:   int(time.Since(f.presented).Seconds()),
	}
	f.mu.Unlock()

	// The visible flow completes regardless of delivery.
	close(f.done)

	if err := f.submit(context.Background(), answer); err != nil {
		log.Printf("sleep alert answer dropped: %v", err)
	}
}

func (f *Flow) hasOption(id string) bool {
	for _, opt := range f.question.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}
