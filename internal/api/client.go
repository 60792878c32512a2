package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/sitansu1aapt/employeetrack-agent/internal/session"
)

// Client talks to the backend REST API. All operations share one base
// URL, bearer-token authentication from the session holder, and the
// standard response envelope.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Holder
}

// NewClient creates a client for the given base URL. The transport's
// default timeout applies; individual operations carry no explicit
// per-call timeout.
func NewClient(baseURL string, holder *session.Holder) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
		session: holder,
	}
}

// envelope is the uniform response wrapper used by every backend
// endpoint: a status code, an optional message, an optional payload.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do issues a JSON request and decodes the envelope payload into out.
// out may be nil for operations with no interesting payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindPrecondition, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &Error{Kind: KindPrecondition, Message: "failed to build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes a prepared request, applying auth and envelope
// handling. A 401 clears the shared token before the error returns.
func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := c.session.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "network unavailable", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Message: "failed to read response", Err: err}
	}

	var env envelope
	// A failed decode is tolerated for error statuses; the status code
	// alone is enough to classify those.
	envOK := json.Unmarshal(raw, &env) == nil

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.session.Clear()
		return &Error{Kind: KindAuthRequired, StatusCode: resp.StatusCode, Message: messageOr(env, envOK, "authentication required")}
	case resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindForbidden, StatusCode: resp.StatusCode, Message: messageOr(env, envOK, "insufficient permissions")}
	case resp.StatusCode >= 500:
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: messageOr(env, envOK, fmt.Sprintf("server error (%d)", resp.StatusCode))}
	case resp.StatusCode >= 400:
		return &Error{Kind: KindValidation, StatusCode: resp.StatusCode, Message: messageOr(env, envOK, fmt.Sprintf("request rejected (%d)", resp.StatusCode))}
	}

	if !envOK {
		return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "malformed response envelope"}
	}
	if env.Code != 0 {
		return &Error{Kind: KindValidation, StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindServer, StatusCode: resp.StatusCode, Message: "malformed response payload", Err: err}
		}
	}

	return nil
}

func messageOr(env envelope, ok bool, fallback string) string {
	if ok && env.Message != "" {
		return env.Message
	}
	return fallback
}
