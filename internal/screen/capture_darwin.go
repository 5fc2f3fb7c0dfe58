//go:build darwin

package screen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type darwinBackend struct{ tempDir string }

type displayReport struct {
	Displays []struct {
		Screens []struct {
			Name   string `json:"_name"`
			Pixels string `json:"_spdisplays_pixels"`
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

func (d *darwinBackend) monitors() ([]Monitor, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return nil, errors.Wrap(err, "system_profiler")
	}
	var report displayReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, errors.Wrap(err, "decode display report")
	}

	var monitors []Monitor
	for _, gpu := range report.Displays {
		for _, s := range gpu.Screens {
			w, h := parsePixels(s.Pixels)
			monitors = append(monitors, Monitor{Index: len(monitors), Width: w, Height: h})
		}
	}
	return monitors, nil
}

// parsePixels reads system_profiler's "3024 x 1964" notation.
func parsePixels(s string) (int, int) {
	parts := strings.Split(s, " x ")
	if len(parts) != 2 {
		return 0, 0
	}
	w, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return w, h
}

func (d *darwinBackend) grab(m Monitor) ([]byte, error) {
	dir := d.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	tmpFile := filepath.Join(dir, fmt.Sprintf("monitor-%d.png", m.Index))
	// -D is 1-based
	cmd := exec.Command("screencapture", "-x", "-t", "png", "-D", strconv.Itoa(m.Index+1), tmpFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "screencapture: %s", strings.TrimSpace(stderr.String()))
	}
	defer os.Remove(tmpFile)

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, errors.Wrap(err, "read screenshot")
	}
	return data, nil
}

func (d *darwinBackend) cleanup() {}

// New creates a platform-specific screen capturer
func New() Capturer {
	tmpDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		slog.Error("failed to create temp dir", "error", err)
		tmpDir = ""
	}
	return newBase(&darwinBackend{tempDir: tmpDir}, tmpDir)
}
