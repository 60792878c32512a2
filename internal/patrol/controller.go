package patrol

import (
	"context"
	"errors"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// ErrNotStartable and ErrNotEndable gate actions the UI should never
// have offered. The server remains authoritative either way.
var (
	ErrNotStartable = errors.New("patrol session is not in a startable state")
	ErrNotEndable   = errors.New("patrol session is not in progress")
)

// Backend is the slice of the REST client the controller needs
type Backend interface {
	ListPatrolSessions(ctx context.Context, role string) ([]models.PatrolSession, error)
	StartPatrolSession(ctx context.Context, role, routeID string) (*models.PatrolSession, error)
	EndPatrolSession(ctx context.Context, sessionID, role, notes string) error
	PatrolSessionStatus(ctx context.Context, sessionID, role string) (*models.PatrolStatus, error)
}

// Controller mediates the patrol session lifecycle for one role
// context. It holds no session cache: list order is server-determined
// and status snapshots replace each other wholesale. Nothing mutates
// locally on failure; the caller re-fetches to observe server state.
type Controller struct {
	backend Backend
	role    string
}

// NewController creates a controller scoped to a role context
func NewController(backend Backend, role string) *Controller {
	return &Controller{backend: backend, role: role}
}

// List fetches the employee's patrol sessions. An empty list is a
// normal outcome, not an error.
func (c *Controller) List(ctx context.Context) ([]models.PatrolSession, error) {
	return c.backend.ListPatrolSessions(ctx, c.role)
}

// Start asks the server to start the given session's route. The
// session must currently be PLANNED; double-start attempts that slip
// through are rejected server-side and leave local state untouched.
func (c *Controller) Start(ctx context.Context, session models.PatrolSession) (*models.PatrolSession, error) {
	if !session.CanStart() {
		return nil, ErrNotStartable
	}
	return c.backend.StartPatrolSession(ctx, c.role, session.RouteID)
}

// End asks the server to end an in-progress session
func (c *Controller) End(ctx context.Context, session models.PatrolSession, notes string) error {
	if !session.CanEnd() {
		return ErrNotEndable
	}
	return c.backend.EndPatrolSession(ctx, session.SessionID, c.role, notes)
}

// Status fetches a fresh checkpoint snapshot for a session
func (c *Controller) Status(ctx context.Context, sessionID string) (*models.PatrolStatus, error) {
	return c.backend.PatrolSessionStatus(ctx, sessionID, c.role)
}
