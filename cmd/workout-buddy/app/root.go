package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/workout-buddy/internal/audio"
	"github.com/GriffinCanCode/workout-buddy/internal/config"
	"github.com/GriffinCanCode/workout-buddy/internal/inference"
	"github.com/GriffinCanCode/workout-buddy/internal/notify"
	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator"
	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator/analysis"
	orchscreen "github.com/GriffinCanCode/workout-buddy/internal/orchestrator/screen"
	"github.com/GriffinCanCode/workout-buddy/internal/screen"
	"github.com/GriffinCanCode/workout-buddy/internal/syncx"
)

// NewRootCommand creates the workout-buddy command tree.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := NewOptions()

	cmd := &cobra.Command{
		Use:           "workout-buddy",
		Short:         "Alert when the on-screen workout countdown ends",
		Long:          `Workout Buddy screenshots a monitor, asks a vision model for the countdown of the current workout element and notifies you when it runs out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			level, _ := opts.Level()
			setupLogging(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(ctx, opts)
		},
	}

	opts.AddFlags(cmd.PersistentFlags())
	cmd.AddCommand(newMonitorsCommand(), newVersionCommand())
	return cmd
}

func setupLogging(level slog.Level) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// Run loads the config and drives the loop until ctx is cancelled or a
// fatal error occurs.
func Run(ctx context.Context, opts *Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	fmt.Println(cfg)

	capturer := screen.New()
	defer capturer.Close()

	client := inference.NewClient(cfg.ChatCompletionsURL(), cfg.APIKey)
	analyzer := analysis.New(orchscreen.NewCollector(capturer, cfg.MonitorToCapture), client, cfg.Model)
	notifier := notify.New(cfg.NotificationSoundPath, audio.NewPlayer())
	orch := orchestrator.New(analyzer, notifier, orchestrator.Policy{
		Threshold:      cfg.IgnoreIfTimeRemainingHigherThan,
		NotifyOvertime: cfg.SendNotificationOvertime,
	})

	slog.Info("starting soon, get ready", "delay", opts.StartDelay)
	if err := syncx.Sleep(ctx, opts.StartDelay); err != nil {
		return nil
	}

	if err := orch.Run(ctx); err != nil {
		slog.Debug("fatal error detail", "error", fmt.Sprintf("%+v", err))
		return err
	}
	slog.Info("shutdown complete", "cycles", orch.Status().Cycles)
	return nil
}
