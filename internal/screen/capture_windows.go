//go:build windows

package screen

import "github.com/pkg/errors"

var errUnsupported = errors.New("screen capture is not supported on windows")

type windowsBackend struct{}

// TODO: implement with GDI BitBlt once a windows build is needed.
func (w *windowsBackend) monitors() ([]Monitor, error) { return nil, errUnsupported }

func (w *windowsBackend) grab(Monitor) ([]byte, error) { return nil, errUnsupported }

func (w *windowsBackend) cleanup() {}

// New creates a platform-specific screen capturer
func New() Capturer {
	return newBase(&windowsBackend{}, "")
}
