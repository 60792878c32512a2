package checkin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sitansu1aapt/employeetrack-agent/internal/geofence"
	"github.com/sitansu1aapt/employeetrack-agent/internal/location"
	"github.com/sitansu1aapt/employeetrack-agent/internal/media"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// Step is the wizard's position in the check-in sequence
type Step int

const (
	StepLocation Step = iota
	StepSelfie
	StepNotes
	StepReady
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepLocation:
		return "awaiting_location"
	case StepSelfie:
		return "awaiting_selfie"
	case StepNotes:
		return "awaiting_notes"
	case StepReady:
		return "ready_to_submit"
	case StepSubmitted:
		return "submitted"
	}
	return "unknown"
}

// Failure signals surfaced to the caller. The wizard itself stays at
// its current step; there is no distinct failed state.
var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrUploadFailed        = errors.New("selfie upload failed")
	ErrMissingData         = errors.New("check-in data incomplete")
	ErrFinished            = errors.New("check-in already submitted")
)

// timestampLayout is ISO-8601 UTC with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Backend is the slice of the REST client the wizard needs
type Backend interface {
	ActiveSiteAssignment(ctx context.Context) (*models.SiteAssignment, error)
	UploadSelfie(ctx context.Context, filename string, data []byte) (string, error)
	SubmitAttendance(ctx context.Context, mode models.AttendanceMode, req models.AttendanceRequest) (*models.AttendanceResult, error)
}

// Wizard drives one check-in or check-out from location fix to
// submission. All state is in memory; nothing is persisted, and every
// transition that matters is confirmed by the server before the local
// step advances past it.
type Wizard struct {
	mode    models.AttendanceMode
	backend Backend
	loc     location.Provider
	cam     media.Capturer
	device  models.DeviceInfo

	maxSelfieBytes int
	step           Step
	record         models.CheckInRecord
	site           *models.SiteAssignment

	now func() time.Time
}

// New creates a wizard at the location step. The mode is fixed for the
// wizard's lifetime.
func New(mode models.AttendanceMode, backend Backend, loc location.Provider, cam media.Capturer, device models.DeviceInfo) *Wizard {
	return &Wizard{
		mode:           mode,
		backend:        backend,
		loc:            loc,
		cam:            cam,
		device:         device,
		maxSelfieBytes: media.DefaultMaxBytes,
		record:         models.CheckInRecord{Mode: mode},
		now:            time.Now,
	}
}

// Begin fetches the active site assignment used for the geofence
// check. Called once at flow start; the boundary is read-only for the
// rest of the run.
func (w *Wizard) Begin(ctx context.Context) error {
	if w.site != nil {
		return nil
	}
	site, err := w.backend.ActiveSiteAssignment(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch site assignment: %w", err)
	}
	w.site = site
	return nil
}

// Step returns the wizard's current step
func (w *Wizard) Step() Step {
	return w.step
}

// Record returns a copy of the data gathered so far
func (w *Wizard) Record() models.CheckInRecord {
	return w.record
}

// Site returns the assignment fetched by Begin, or nil
func (w *Wizard) Site() *models.SiteAssignment {
	return w.site
}

// SetNotes records optional notes. Notes never gate progression.
func (w *Wizard) SetNotes(notes string) {
	w.record.Notes = notes
}

// Advance performs the current step's action and moves forward on
// success. On failure the step is unchanged and the error names the
// signal (ErrLocationUnavailable, media.ErrCancelled, ErrUploadFailed).
func (w *Wizard) Advance(ctx context.Context) error {
	switch w.step {
	case StepLocation:
		return w.advanceLocation(ctx)
	case StepSelfie:
		return w.advanceSelfie(ctx)
	case StepNotes:
		w.step = StepReady
		return nil
	case StepReady:
		return nil
	}
	return ErrFinished
}

// Back moves one step backward. Data already captured is retained;
// re-entering a step does not clear previously fetched values.
func (w *Wizard) Back() {
	if w.step > StepLocation && w.step < StepSubmitted {
		w.step--
	}
}

func (w *Wizard) advanceLocation(ctx context.Context) error {
	// Coordinates are set once. Re-entry after Back skips the fetch.
	if !w.record.HasLocation() {
		snap, err := w.loc.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
		}
		w.record.Latitude = &snap.Latitude
		w.record.Longitude = &snap.Longitude
		w.record.Accuracy = &snap.Accuracy

		if w.site != nil {
			res := geofence.Evaluate(models.LatLng{Lat: snap.Latitude, Lng: snap.Longitude}, w.site.Boundary)
			w.record.InsideFence = res.Inside
			w.record.DistanceMeters = res.DistanceMeters
		}
	}
	w.step = StepSelfie
	return nil
}

func (w *Wizard) advanceSelfie(ctx context.Context) error {
	if w.record.SelfieReference == "" {
		photo, err := w.cam.Capture(ctx)
		if err != nil {
			// Cancelled or failed capture: no state change, the user
			// simply tries again.
			return err
		}

		compressed, err := media.Compress(photo, w.maxSelfieBytes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}

		ref, err := w.backend.UploadSelfie(ctx, "selfie.jpg", compressed)
		if err != nil {
			// Upload failure requires a fresh capture on the next try.
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		w.record.SelfieReference = ref
	}
	w.step = StepNotes
	return nil
}

// Submit posts the gathered record. It rejects locally with
// ErrMissingData, issuing no network call, unless coordinates, accuracy
// and the selfie reference are all present. On server failure the
// wizard stays at the ready step and the caller may re-submit.
func (w *Wizard) Submit(ctx context.Context) (*models.AttendanceResult, error) {
	if w.step == StepSubmitted {
		return nil, ErrFinished
	}
	if w.step != StepReady || !w.record.HasLocation() || w.record.SelfieReference == "" {
		return nil, ErrMissingData
	}

	// The timestamp is taken at submission, not at the location fix:
	// the fix can precede the actual submit by an arbitrary delay.
	req := models.AttendanceRequest{
		Latitude:        *w.record.Latitude,
		Longitude:       *w.record.Longitude,
		Accuracy:        *w.record.Accuracy,
		Timestamp:       w.now().UTC().Format(timestampLayout),
		SelfieReference: w.record.SelfieReference,
		Device:          w.device,
		Notes:           w.record.Notes,
		InsideFence:     w.record.InsideFence,
		DistanceMeters:  w.record.DistanceMeters,
	}

	result, err := w.backend.SubmitAttendance(ctx, w.mode, req)
	if err != nil {
		return nil, err
	}

	w.step = StepSubmitted
	w.record = models.CheckInRecord{Mode: w.mode}
	return result, nil
}
