package checkin

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitansu1aapt/employeetrack-agent/internal/location"
	"github.com/sitansu1aapt/employeetrack-agent/internal/media"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

type fakeBackend struct {
	site    *models.SiteAssignment
	siteErr error

	uploadRef string
	uploadErr error
	uploads   int

	submitErr error
	submits   int
	lastReq   models.AttendanceRequest
}

func (f *fakeBackend) ActiveSiteAssignment(ctx context.Context) (*models.SiteAssignment, error) {
	if f.siteErr != nil {
		return nil, f.siteErr
	}
	return f.site, nil
}

func (f *fakeBackend) UploadSelfie(ctx context.Context, filename string, data []byte) (string, error) {
	f.uploads++
	if f.uploadErr != nil {
		err := f.uploadErr
		f.uploadErr = nil
		return "", err
	}
	return f.uploadRef, nil
}

func (f *fakeBackend) SubmitAttendance(ctx context.Context, mode models.AttendanceMode, req models.AttendanceRequest) (*models.AttendanceResult, error) {
	f.submits++
	f.lastReq = req
	if f.submitErr != nil {
		err := f.submitErr
		f.submitErr = nil
		return nil, err
	}
	return &models.AttendanceResult{AttendanceID: "att-1", Status: "RECORDED"}, nil
}

type fakeProvider struct {
	snap  *location.Snapshot
	err   error
	calls int
}

func (f *fakeProvider) Snapshot(ctx context.Context) (*location.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

// fakeCapturer replays a scripted sequence of capture outcomes
type fakeCapturer struct {
	results []error
	photo   []byte
	calls   int
}

func (f *fakeCapturer) Capture(ctx context.Context) ([]byte, error) {
	f.calls++
	if len(f.results) > 0 {
		err := f.results[0]
		f.results = f.results[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.photo, nil
}

func testPhoto(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func testSite() *models.SiteAssignment {
	return &models.SiteAssignment{
		AssignmentID: "asg-1",
		SiteID:       "site-1",
		SiteName:     "North Depot",
		GeofenceID:   "geo-1",
		Boundary: []models.LatLng{
			{Lat: 12.960, Lng: 77.580},
			{Lat: 12.960, Lng: 77.600},
			{Lat: 12.980, Lng: 77.600},
			{Lat: 12.980, Lng: 77.580},
		},
	}
}

func newTestWizard(t *testing.T, backend *fakeBackend, provider *fakeProvider, capturer *fakeCapturer) *Wizard {
	t.Helper()
	w := New(models.ModeCheckIn, backend, provider, capturer, models.DeviceInfo{DeviceID: "dev-1", Platform: "linux"})
	require.NoError(t, w.Begin(context.Background()))
	return w
}

func TestWizard_FullSequenceWithCancelledCapture(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-123"}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 8}}
	capturer := &fakeCapturer{results: []error{media.ErrCancelled, nil}, photo: testPhoto(t)}

	w := newTestWizard(t, backend, provider, capturer)

	// Location fetch succeeds.
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepSelfie, w.Step())

	// Capture cancelled: state unchanged.
	err := w.Advance(ctx)
	require.ErrorIs(t, err, media.ErrCancelled)
	assert.Equal(t, StepSelfie, w.Step())
	assert.Zero(t, backend.uploads)

	// Capture and upload succeed.
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepNotes, w.Step())
	assert.Equal(t, 1, backend.uploads)

	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepReady, w.Step())

	result, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "att-1", result.AttendanceID)
	assert.Equal(t, StepSubmitted, w.Step())

	// Exactly one POST, with the fields gathered along the way.
	require.Equal(t, 1, backend.submits)
	assert.Equal(t, 12.970, backend.lastReq.Latitude)
	assert.Equal(t, 77.590, backend.lastReq.Longitude)
	assert.Equal(t, 8.0, backend.lastReq.Accuracy)
	assert.Equal(t, "ref-123", backend.lastReq.SelfieReference)
	assert.Equal(t, "dev-1", backend.lastReq.Device.DeviceID)
	assert.True(t, backend.lastReq.InsideFence)
}

func TestWizard_LocationFailureStaysAtFirstStep(t *testing.T) {
	backend := &fakeBackend{site: testSite()}
	provider := &fakeProvider{err: location.ErrUnavailable}
	w := newTestWizard(t, backend, provider, &fakeCapturer{})

	err := w.Advance(context.Background())
	require.ErrorIs(t, err, ErrLocationUnavailable)
	assert.Equal(t, StepLocation, w.Step())
}

func TestWizard_UploadFailureRequiresRecapture(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-1", uploadErr: errors.New("boom")}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	capturer := &fakeCapturer{photo: testPhoto(t)}
	w := newTestWizard(t, backend, provider, capturer)

	require.NoError(t, w.Advance(ctx))

	err := w.Advance(ctx)
	require.ErrorIs(t, err, ErrUploadFailed)
	assert.Equal(t, StepSelfie, w.Step())
	assert.Empty(t, w.Record().SelfieReference)

	// Next attempt captures again and succeeds.
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, 2, capturer.calls)
	assert.Equal(t, "ref-1", w.Record().SelfieReference)
}

func TestWizard_BackRetainsData(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-9"}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	capturer := &fakeCapturer{photo: testPhoto(t)}
	w := newTestWizard(t, backend, provider, capturer)

	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, StepNotes, w.Step())

	w.Back()
	assert.Equal(t, StepSelfie, w.Step())
	assert.Equal(t, "ref-9", w.Record().SelfieReference, "backward navigation keeps captured data")

	w.Back()
	assert.Equal(t, StepLocation, w.Step())
	rec := w.Record()
	assert.True(t, rec.HasLocation())

	// Re-advancing does not refetch or recapture.
	require.NoError(t, w.Advance(ctx))
	require.NoError(t, w.Advance(ctx))
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, capturer.calls)
}

func TestWizard_SubmitRejectsMissingDataLocally(t *testing.T) {
	backend := &fakeBackend{site: testSite()}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	w := newTestWizard(t, backend, provider, &fakeCapturer{})

	// Not at the ready step yet.
	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrMissingData)
	assert.Zero(t, backend.submits, "no network call on local rejection")

	// At the ready step but without a selfie reference.
	w.step = StepReady
	_, err = w.Submit(context.Background())
	require.ErrorIs(t, err, ErrMissingData)
	assert.Zero(t, backend.submits)
}

func TestWizard_ServerFailureAllowsResubmit(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-1", submitErr: errors.New("503")}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	w := newTestWizard(t, backend, provider, &fakeCapturer{photo: testPhoto(t)})

	for w.Step() != StepReady {
		require.NoError(t, w.Advance(ctx))
	}

	_, err := w.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, StepReady, w.Step(), "failed submit keeps the wizard at ready")

	result, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "att-1", result.AttendanceID)
	assert.Equal(t, 2, backend.submits)
}

func TestWizard_SubmitTimestampIsTakenAtSubmit(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-1"}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	w := newTestWizard(t, backend, provider, &fakeCapturer{photo: testPhoto(t)})

	fixed := time.Date(2025, 6, 1, 9, 30, 15, 250*int(time.Millisecond), time.UTC)
	w.now = func() time.Time { return fixed }

	for w.Step() != StepReady {
		require.NoError(t, w.Advance(ctx))
	}
	_, err := w.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01T09:30:15.250Z", backend.lastReq.Timestamp)
}

func TestWizard_SubmittedIsTerminal(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{site: testSite(), uploadRef: "ref-1"}
	provider := &fakeProvider{snap: &location.Snapshot{Latitude: 12.970, Longitude: 77.590, Accuracy: 5}}
	w := newTestWizard(t, backend, provider, &fakeCapturer{photo: testPhoto(t)})

	for w.Step() != StepReady {
		require.NoError(t, w.Advance(ctx))
	}
	_, err := w.Submit(ctx)
	require.NoError(t, err)

	_, err = w.Submit(ctx)
	assert.ErrorIs(t, err, ErrFinished)
	assert.ErrorIs(t, w.Advance(ctx), ErrFinished)
	assert.Equal(t, 1, backend.submits)
}
