package report

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sitansu1aapt/employeetrack-agent/internal/location"
	"github.com/sitansu1aapt/employeetrack-agent/internal/models"
)

// Default reporting cadence
const (
	DefaultBaseInterval = 30 * time.Second
	DefaultMaxInterval  = 5 * time.Minute
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Sender delivers one location report
type Sender func(ctx context.Context, report models.LocationReport) error

// Reporter periodically posts the device position. On failure the
// interval grows by 1.5x up to a cap; a success resets it to the base.
// It retries indefinitely until the context is cancelled.
type Reporter struct {
	provider location.Provider
	send     Sender
	deviceID string
	base     time.Duration
	max      time.Duration

	mu       sync.Mutex
	interval time.Duration
}

// New creates a reporter. Zero base or max picks the defaults.
func New(provider location.Provider, send Sender, deviceID string, base, max time.Duration) *Reporter {
	if base <= 0 {
		base = DefaultBaseInterval
	}
	if max < base {
		max = DefaultMaxInterval
	}
	return &Reporter{
		provider: provider,
		send:     send,
		deviceID: deviceID,
		base:     base,
		max:      max,
		interval: base,
	}
}

// Interval returns the current wait between attempts
func (r *Reporter) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// Run reports until ctx is cancelled. The first attempt happens
// immediately.
func (r *Reporter) Run(ctx context.Context) {
	for {
		if err := r.reportOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("location report failed: %v", err)
			r.backoff()
		} else {
			r.reset()
		}

		timer := time.NewTimer(r.Interval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (r *Reporter) reportOnce(ctx context.Context) error {
	snap, err := r.provider.Snapshot(ctx)
	if err != nil {
		return err
	}
	return r.send(ctx, models.LocationReport{
		Latitude:  snap.Latitude,
		Longitude: snap.Longitude,
		Accuracy:  snap.Accuracy,
		Timestamp: snap.TakenAt.UTC().Format(timestampLayout),
		DeviceID:  r.deviceID,
	})
}

func (r *Reporter) backoff() {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.interval + r.interval/2
	if next > r.max {
		next = r.max
	}
	r.interval = next
}

func (r *Reporter) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = r.base
}
