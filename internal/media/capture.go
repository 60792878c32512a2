package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrCancelled means the user backed out of the capture. The wizard
// stays at the selfie step with no state change.
var ErrCancelled = errors.New("capture cancelled")

// Capturer produces a photo as raw image bytes
type Capturer interface {
	Capture(ctx context.Context) ([]byte, error)
}

// File reads a pre-captured photo from disk (CLI path)
type File struct {
	Path string
}

func (f File) Capture(ctx context.Context) ([]byte, error) {
	if f.Path == "" {
		return nil, ErrCancelled
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo: %w", err)
	}
	return data, nil
}

// Command shells out to an external capture program that writes image
// bytes to stdout. A non-zero exit is treated as a cancelled capture.
type Command struct {
	Path string
	Args []string
}

func (c Command) Capture(ctx context.Context) ([]byte, error) {
	out, err := exec.CommandContext(ctx, c.Path, c.Args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if len(out) == 0 {
		return nil, ErrCancelled
	}
	return out, nil
}
