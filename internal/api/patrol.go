package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

func roleQuery(role string) url.Values {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	return q
}

// ListPatrolSessions fetches the caller's patrol sessions for the given
// role context. An employee with no assignments gets an empty list.
func (c *Client) ListPatrolSessions(ctx context.Context, role string) ([]models.PatrolSession, error) {
	var sessions []models.PatrolSession
	if err := c.do(ctx, http.MethodGet, "employee/patrol/sessions", roleQuery(role), nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

type startPatrolRequest struct {
	RouteID string `json:"route_id"`
}

// StartPatrolSession asks the server to start a patrol on the given
// route. The server decides whether the start is legal.
func (c *Client) StartPatrolSession(ctx context.Context, role, routeID string) (*models.PatrolSession, error) {
	var s models.PatrolSession
	if err := c.do(ctx, http.MethodPost, "employee/patrol/sessions/start", roleQuery(role), startPatrolRequest{RouteID: routeID}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type endPatrolRequest struct {
	Notes string `json:"notes,omitempty"`
}

// EndPatrolSession ends an in-progress patrol session
func (c *Client) EndPatrolSession(ctx context.Context, sessionID, role, notes string) error {
	return c.do(ctx, http.MethodPost, "employee/patrol/sessions/"+sessionID+"/end", roleQuery(role), endPatrolRequest{Notes: notes}, nil)
}

// PatrolSessionStatus fetches a fresh checkpoint progress snapshot.
// No caching: every view re-fetches.
func (c *Client) PatrolSessionStatus(ctx context.Context, sessionID, role string) (*models.PatrolStatus, error) {
	var status models.PatrolStatus
	if err := c.do(ctx, http.MethodGet, "employee/patrol/sessions/"+sessionID+"/status", roleQuery(role), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
