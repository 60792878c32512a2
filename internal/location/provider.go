package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ErrUnavailable means no position fix could be obtained
var ErrUnavailable = errors.New("location unavailable")

// Snapshot is one last-known position fix
type Snapshot struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"` // meters
	TakenAt   time.Time `json:"taken_at"`
}

// Provider yields the device's last-known coordinates
type Provider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Static is a provider with fixed coordinates, used by CLI invocations
// that pass the position explicitly.
type Static struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
}

func (s Static) Snapshot(ctx context.Context) (*Snapshot, error) {
	return &Snapshot{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Accuracy:  s.Accuracy,
		TakenAt:   time.Now(),
	}, nil
}

// Command shells out to an external locator program that prints a JSON
// object with latitude, longitude and accuracy fields. This is how the
// agent integrates platform positioning (gpsd wrappers, termux-location
// and similar).
type Command struct {
	Path string
	Args []string
}

func (c Command) Snapshot(ctx context.Context) (*Snapshot, error) {
	out, err := exec.CommandContext(ctx, c.Path, c.Args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: locator command failed: %v", ErrUnavailable, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(out, &snap); err != nil {
		return nil, fmt.Errorf("%w: bad locator output: %v", ErrUnavailable, err)
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now()
	}
	return &snap, nil
}
