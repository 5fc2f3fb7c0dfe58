// Package audio plays notification sounds on the default output device
package audio

// Playback configuration
const (
	// FramesPerBuffer is ~23ms at 44100Hz
	FramesPerBuffer = 1024
)
