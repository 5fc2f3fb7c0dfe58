package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/workout-buddy/internal/config"
	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator"
)

// Options are the command-line settings. Everything else lives in the config file.
type Options struct {
	ConfigPath string
	StartDelay time.Duration
	LogLevel   string
}

// NewOptions returns options with defaults applied.
func NewOptions() *Options {
	return &Options{
		ConfigPath: config.DefaultPath,
		StartDelay: orchestrator.DefaultStartDelay,
		LogLevel:   "info",
	}
}

// AddFlags registers the options on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath, "path to the JSON config file")
	fs.DurationVar(&o.StartDelay, "start-delay", o.StartDelay, "wait before the first analysis")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level: debug, info, warn or error")
}

// Validate checks flag values.
func (o *Options) Validate() error {
	if o.StartDelay < 0 {
		return fmt.Errorf("--start-delay must not be negative, got %s", o.StartDelay)
	}
	if _, err := o.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (o *Options) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return 0, fmt.Errorf("--log-level: %w", err)
	}
	return l, nil
}
