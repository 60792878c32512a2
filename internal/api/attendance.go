package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// SubmitAttendance posts a completed check-in or check-out record
func (c *Client) SubmitAttendance(ctx context.Context, mode models.AttendanceMode, req models.AttendanceRequest) (*models.AttendanceResult, error) {
	path := "attendance/check-in"
	if mode == models.ModeCheckOut {
		path = "attendance/check-out"
	}

	var result models.AttendanceResult
	if err := c.do(ctx, http.MethodPost, path, nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ActiveSiteAssignment fetches the caller's active site, including the
// geofence boundary polygon
func (c *Client) ActiveSiteAssignment(ctx context.Context) (*models.SiteAssignment, error) {
	var site models.SiteAssignment
	if err := c.do(ctx, http.MethodGet, "site-assignments/me/active", nil, nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

type uploadResult struct {
	Reference string `json:"reference"`
}

// UploadSelfie uploads a selfie image and returns the reference string
// the attendance submission must carry
func (c *Client) UploadSelfie(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", &Error{Kind: KindPrecondition, Message: "failed to build upload", Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return "", &Error{Kind: KindPrecondition, Message: "failed to build upload", Err: err}
	}
	if err := w.Close(); err != nil {
		return "", &Error{Kind: KindPrecondition, Message: "failed to build upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/attendance-selfie", &buf)
	if err != nil {
		return "", &Error{Kind: KindPrecondition, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result uploadResult
	if err := c.send(req, &result); err != nil {
		return "", err
	}
	if result.Reference == "" {
		return "", &Error{Kind: KindServer, Message: "upload returned no reference"}
	}
	return result.Reference, nil
}
