// Package screen collects the timed frame bursts each analysis cycle sends out
package screen

import "time"

// Burst shape
const (
	// FramesPerBurst is the number of screenshots per cycle
	FramesPerBurst = 3

	// FrameGap separates consecutive screenshots
	FrameGap = time.Second
)
