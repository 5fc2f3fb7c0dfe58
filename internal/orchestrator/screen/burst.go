// Package screen collects the timed frame bursts each analysis cycle sends out
package screen

import (
	"bytes"
	"context"
	"image"
	_ "image/png" // PNG decoder
	"time"

	"github.com/corona10/goimagehash"
	"github.com/pkg/errors"

	screencap "github.com/GriffinCanCode/workout-buddy/internal/screen"
	"github.com/GriffinCanCode/workout-buddy/internal/syncx"
	"github.com/GriffinCanCode/workout-buddy/internal/trace"
)

// Burst is one cycle's worth of frames.
type Burst struct {
	Frames []*screencap.Frame
	// Anchor is taken immediately before the last capture starts.
	Anchor time.Time
	// Distance is the pHash Hamming distance between the first and last
	// frame, or -1 when it could not be computed.
	Distance int
}

// DataURIs returns the frames in capture order as data URIs.
func (b *Burst) DataURIs() []string {
	uris := make([]string, len(b.Frames))
	for i, f := range b.Frames {
		uris[i] = f.DataURI()
	}
	return uris
}

// Collector takes evenly spaced captures of one monitor.
type Collector struct {
	capturer screencap.Capturer
	monitor  int
	count    int
	gap      time.Duration
	sleep    func(context.Context, time.Duration) error
	now      func() time.Time
}

// NewCollector creates a collector for the given monitor index.
func NewCollector(capturer screencap.Capturer, monitor int) *Collector {
	return &Collector{
		capturer: capturer,
		monitor:  monitor,
		count:    FramesPerBurst,
		gap:      FrameGap,
		sleep:    syncx.Sleep,
		now:      time.Now,
	}
}

// Collect captures the burst. Any capture failure aborts it.
func (c *Collector) Collect(ctx context.Context) (*Burst, error) {
	log := trace.Logger(ctx)
	b := &Burst{Frames: make([]*screencap.Frame, 0, c.count), Distance: -1}

	for i := 0; i < c.count; i++ {
		log.Info("taking screenshot", "n", i+1, "of", c.count, "monitor", c.monitor)
		if i == c.count-1 {
			b.Anchor = c.now()
		}
		frame, err := c.capturer.Capture(c.monitor)
		if err != nil {
			return nil, err
		}
		b.Frames = append(b.Frames, frame)

		if i < c.count-1 {
			if err := c.sleep(ctx, c.gap); err != nil {
				return nil, err
			}
		}
	}

	if len(b.Frames) > 1 {
		dist, err := Distance(b.Frames[0].PNG, b.Frames[len(b.Frames)-1].PNG)
		if err != nil {
			log.Debug("burst similarity unavailable", "error", err)
		} else {
			b.Distance = dist
			log.Debug("burst similarity", "distance", dist)
		}
	}
	return b, nil
}

// Distance decodes two encoded images and returns their pHash Hamming distance.
func Distance(a, b []byte) (int, error) {
	ha, err := perceptionHash(a)
	if err != nil {
		return 0, err
	}
	hb, err := perceptionHash(b)
	if err != nil {
		return 0, err
	}
	return ha.Distance(hb)
}

func perceptionHash(data []byte) (*goimagehash.ImageHash, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode frame")
	}
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, errors.Wrap(err, "perception hash")
	}
	return hash, nil
}
