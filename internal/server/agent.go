package server

import (
	"context"
	"log"
	"sync"

	"github.com/sitansu1aapt/employeetrack-agent/internal/api"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
	"github.com/sitansu1aapt/employeetrack-agent/internal/sleepalert"
)

// Agent reacts to dispatched push messages. It owns at most one live
// wake-check flow at a time; a new alert replaces a finished one.
type Agent struct {
	ctx    context.Context
	client *api.Client

	mu    sync.Mutex
	alert *sleepalert.Flow
}

// NewAgent creates the push message handler. Flows spawned for alerts
// are cancelled with ctx.
func NewAgent(ctx context.Context, client *api.Client) *Agent {
	return &Agent{ctx: ctx, client: client}
}

// HandleSleepAlert presents a wake-check question and runs its
// countdown. With no interaction the flow times out and submits a null
// answer, which is the wake-check's point.
func (a *Agent) HandleSleepAlert(question models.SleepAlertQuestion) {
	flow := sleepalert.New(question, a.client.SubmitSleepAnswer)

	a.mu.Lock()
	a.alert = flow
	a.mu.Unlock()

	log.Printf("sleep alert presented: session=%s question=%s duration=%ds",
		question.SessionID, question.QuestionID, question.DurationSeconds)

	go flow.Run(a.ctx)
}

// HandleTaskAssigned logs an assignment; the task itself is fetched on
// demand through the tasks listing.
func (a *Agent) HandleTaskAssigned(task models.Task) {
	log.Printf("task assigned: %s %q", task.TaskID, task.Title)
}

// HandleNotice logs an inbox notification
func (a *Agent) HandleNotice(n models.Notification) {
	log.Printf("notification: %s %q", n.NotificationID, n.Title)
}

// ActiveAlert returns the current wake-check flow, or nil
func (a *Agent) ActiveAlert() *sleepalert.Flow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.alert
}
