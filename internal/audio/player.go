// Package audio plays notification sounds on the default output device
package audio

import (
	"context"
	"log/slog"
	"os"

	"github.com/gordonklaus/portaudio"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

// Player plays clips to completion. Concurrent calls open independent streams.
type Player struct {
	framesPerBuf int
}

// NewPlayer creates a player.
func NewPlayer() *Player {
	return &Player{framesPerBuf: FramesPerBuffer}
}

// PlayFile decodes the WAV file at path and plays it.
func (p *Player) PlayFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.KindAudio, "open %q", path)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return err
	}
	return p.Play(ctx, clip)
}

// Play blocks until clip has been written to the device or ctx is done.
func (p *Player) Play(ctx context.Context, clip *Clip) error {
	if err := portaudio.Initialize(); err != nil {
		return apperrors.Wrap(err, apperrors.KindAudio, "initialize portaudio")
	}
	defer portaudio.Terminate()

	buf := make([]float32, p.framesPerBuf*clip.Channels)
	stream, err := portaudio.OpenDefaultStream(0, clip.Channels, float64(clip.SampleRate), p.framesPerBuf, buf)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindAudio, "open output stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return apperrors.Wrap(err, apperrors.KindAudio, "start output stream")
	}
	defer func() { _ = stream.Stop() }()

	slog.Debug("playing clip", "frames", clip.Frames(), "channels", clip.Channels, "rate", clip.SampleRate)
	for off := 0; off < len(clip.Samples); {
		if err := ctx.Err(); err != nil {
			return err
		}
		off = fill(buf, clip.Samples, off)
		if err := stream.Write(); err != nil {
			return apperrors.Wrap(err, apperrors.KindAudio, "write output stream")
		}
	}
	return nil
}

// fill copies samples from off into buf, zero-padding the tail, and returns
// the next offset.
func fill(buf, samples []float32, off int) int {
	n := copy(buf, samples[off:])
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return off + n
}
