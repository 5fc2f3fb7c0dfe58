// Package screen provides platform-agnostic monitor capture
package screen

import (
	"encoding/base64"
	"os"
	"strconv"
	"time"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

// Monitor describes one capturable display.
type Monitor struct {
	Index  int
	X, Y   int
	Width  int
	Height int
}

// Frame is a single PNG screenshot of a monitor.
type Frame struct {
	Monitor    int
	PNG        []byte
	CapturedAt time.Time
}

// DataURI renders the frame the way chat-completion image parts expect it.
func (f *Frame) DataURI() string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(f.PNG)
}

// Capturer grabs still images of a monitor by index.
type Capturer interface {
	Monitors() ([]Monitor, error)
	Capture(index int) (*Frame, error)
	Close()
}

// backend implements platform-specific monitor lookup and raw capture
type backend interface {
	monitors() ([]Monitor, error)
	grab(m Monitor) ([]byte, error)
	cleanup()
}

// baseCapturer resolves indexes and stamps frames for every backend
type baseCapturer struct {
	backend
	tempDir string
	now     func() time.Time
}

func newBase(b backend, tempDir string) *baseCapturer {
	return &baseCapturer{backend: b, tempDir: tempDir, now: time.Now}
}

func (c *baseCapturer) Monitors() ([]Monitor, error) {
	monitors, err := c.monitors()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindCapture, "list monitors")
	}
	return monitors, nil
}

func (c *baseCapturer) Capture(index int) (*Frame, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(monitors) {
		return nil, apperrors.Newf(apperrors.KindCapture, "monitor %d not found", index).
			WithMetadata("available", strconv.Itoa(len(monitors)))
	}

	at := c.now()
	data, err := c.grab(monitors[index])
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindCapture, "capture monitor %d", index)
	}
	if len(data) == 0 {
		return nil, apperrors.Newf(apperrors.KindCapture, "capture monitor %d returned no data", index)
	}
	return &Frame{Monitor: index, PNG: data, CapturedAt: at}, nil
}

func (c *baseCapturer) Close() {
	c.cleanup()
	if c.tempDir != "" {
		os.RemoveAll(c.tempDir)
	}
}
