// Package notify shows the desktop alert and plays the notification sound
package notify

import (
	"context"
	"os"

	"github.com/gen2brain/beeep"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
	"github.com/GriffinCanCode/workout-buddy/internal/trace"
)

// Title is shown on every alert.
const Title = "Workout Buddy"

// SoundPlayer plays an audio file to completion.
type SoundPlayer interface {
	PlayFile(ctx context.Context, path string) error
}

// Notifier alerts the user through the desktop and, if configured, a sound.
type Notifier struct {
	soundPath string
	player    SoundPlayer
	alert     func(title, message string) error
}

// New creates a notifier. soundPath may point to a missing file.
func New(soundPath string, player SoundPlayer) *Notifier {
	return &Notifier{
		soundPath: soundPath,
		player:    player,
		alert: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify shows the alert, then starts the sound without waiting for it.
// Only the alert can fail.
func (n *Notifier) Notify(ctx context.Context, message string) error {
	log := trace.Logger(ctx)
	if err := n.alert(Title, message); err != nil {
		return apperrors.Wrap(err, apperrors.KindNotification, "show desktop notification")
	}
	log.Info("notification sent", "message", message)

	if n.PlayIfExists(ctx, n.soundPath) {
		log.Info("playing notification sound", "path", n.soundPath)
	} else {
		log.Info("no notification sound played")
	}
	return nil
}

// PlayIfExists starts detached playback of path and reports whether it did.
// A missing file is not an error. Playback errors are logged, never returned.
func (n *Notifier) PlayIfExists(ctx context.Context, path string) bool {
	log := trace.Logger(ctx)
	if path == "" || n.player == nil {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		log.Warn("notification sound not found", "path", path)
		return false
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if err := n.player.PlayFile(bg, path); err != nil {
			log.Error("notification sound failed", "path", path, "error", err)
		}
	}()
	return true
}
