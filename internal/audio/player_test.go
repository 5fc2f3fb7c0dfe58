package audio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

func writeWAV(t *testing.T, rate, channels int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ding.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	return path
}

func TestDecodeNormalizes(t *testing.T) {
	path := writeWAV(t, 8000, 1, []int{0, 16384, -16384, -32768})
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if clip.SampleRate != 8000 || clip.Channels != 1 {
		t.Errorf("format = %d Hz x %d, want 8000 Hz x 1", clip.SampleRate, clip.Channels)
	}
	want := []float32{0, 0.5, -0.5, -1}
	if len(clip.Samples) != len(want) {
		t.Fatalf("len(Samples) = %d, want %d", len(clip.Samples), len(want))
	}
	for i := range want {
		if clip.Samples[i] != want[i] {
			t.Errorf("Samples[%d] = %v, want %v", i, clip.Samples[i], want[i])
		}
	}
}

func TestDecodeStereoFrames(t *testing.T) {
	path := writeWAV(t, 44100, 2, []int{1, 2, 3, 4, 5, 6})
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if clip.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", clip.Frames())
	}
}

func TestDecodeRejectsNonWAV(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not RIFF data")))
	if !apperrors.IsKind(err, apperrors.KindAudio) {
		t.Errorf("Decode() error = %v, want audio error", err)
	}
}

func TestPlayFileMissing(t *testing.T) {
	err := NewPlayer().PlayFile(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	if !apperrors.IsKind(err, apperrors.KindAudio) {
		t.Errorf("PlayFile() error = %v, want audio error", err)
	}
}

func TestFill(t *testing.T) {
	samples := []float32{1, 2, 3, 4, 5}
	buf := []float32{9, 9, 9, 9}

	off := fill(buf, samples, 0)
	if off != 4 {
		t.Errorf("offset = %d, want 4", off)
	}

	off = fill(buf, samples, off)
	if off != 5 {
		t.Errorf("offset = %d, want 5", off)
	}
	want := []float32{5, 0, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestPlayOnDevice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping audio device test in short mode")
	}
	if err := portaudio.Initialize(); err != nil {
		t.Skipf("portaudio unavailable: %v", err)
	}
	_, devErr := portaudio.DefaultOutputDevice()
	_ = portaudio.Terminate()
	if devErr != nil {
		t.Skipf("no output device: %v", devErr)
	}

	clip := &Clip{Samples: make([]float32, 4410), Channels: 1, SampleRate: 44100}
	if err := NewPlayer().Play(context.Background(), clip); err != nil {
		t.Errorf("Play() error = %v", err)
	}
}
