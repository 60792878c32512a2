package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
	"github.com/sitansu1aapt/employeetrack-agent/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *session.Holder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	holder := session.NewHolder()
	holder.Set("token-1")
	return NewClient(srv.URL, holder), holder
}

func writeEnvelope(w http.ResponseWriter, status, code int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func TestClient_SuccessDecodesEnvelope(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, 200, 0, "success", models.DutyStatus{OnDuty: true, Since: "2025-06-01T08:00:00.000Z"})
	})

	status, err := client.DutyStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.OnDuty)
	assert.Equal(t, "Bearer token-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_401ClearsSharedToken(t *testing.T) {
	client, holder := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 401, 401, "token expired", nil)
	})

	_, err := client.ListTasks(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindAuthRequired, KindOf(err))

	// The holder is absent for every subsequent request.
	_, ok := holder.Get()
	assert.False(t, ok)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   Kind
	}{
		{"forbidden", 403, KindForbidden},
		{"validation", 422, KindValidation},
		{"server fault", 500, KindServer},
		{"bad gateway", 502, KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tt.status, tt.status, "nope", nil)
			})

			_, err := client.ListTasks(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	holder := session.NewHolder()
	client := NewClient(srv.URL, holder)
	srv.Close()

	_, err := client.ListTasks(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestClient_EnvelopeErrorCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, 1001, "shift already closed", nil)
	})

	_, err := client.DutyStatus(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "shift already closed", apiErr.Message)
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, 200, 0, "success", nil)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, session.NewHolder())
	_, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UploadSelfie(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files/attendance-selfie", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "selfie.jpg", header.Filename)

		writeEnvelope(w, 200, 0, "success", map[string]string{"reference": "att-selfie/42.jpg"})
	})

	ref, err := client.UploadSelfie(context.Background(), "selfie.jpg", []byte("jpegbytes"))
	require.NoError(t, err)
	assert.Equal(t, "att-selfie/42.jpg", ref)
}

func TestClient_UploadSelfieEmptyReference(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 200, 0, "success", map[string]string{})
	})

	_, err := client.UploadSelfie(context.Background(), "selfie.jpg", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, KindServer, KindOf(err))
}

func TestClient_PatrolEndpoints(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/employee/patrol/sessions" && r.Method == http.MethodGet:
			assert.Equal(t, "guard", r.URL.Query().Get("role"))
			writeEnvelope(w, 200, 0, "success", []models.PatrolSession{{SessionID: "s1", Status: models.PatrolPlanned}})
		case r.URL.Path == "/employee/patrol/sessions/s1/end":
			var body struct {
				Notes string `json:"notes"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "done", body.Notes)
			writeEnvelope(w, 200, 0, "success", nil)
		default:
			writeEnvelope(w, 404, 404, "not found", nil)
		}
	})

	sessions, err := client.ListPatrolSessions(context.Background(), "guard")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "s1", sessions[0].SessionID)

	require.NoError(t, client.EndPatrolSession(context.Background(), "s1", "guard", "done"))

	assert.Equal(t, []string{
		"GET /employee/patrol/sessions",
		"POST /employee/patrol/sessions/s1/end",
	}, paths)
}
