// Package config loads the watcher configuration from a JSON file
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

//go:embed schema.json
var schemaJSON string

var fileSchema = jsonschema.MustCompileString("config.schema.json", schemaJSON)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	MonitorToCapture                int     `json:"monitor_to_capture"`
	APIBase                         string  `json:"api_base"`
	APIKey                          string  `json:"api_key"`
	Model                           string  `json:"model"`
	NotificationSoundPath           string  `json:"notification_sound_path"`
	SendNotificationOvertime        bool    `json:"send_notification_overtime"`
	IgnoreIfTimeRemainingHigherThan float64 `json:"ignore_if_time_remaining_higher_than"`
}

// Load reads, validates and decodes the config file at path.
func Load(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindConfig, "expand config path %q", path)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindConfig, "read config file %q", expanded)
	}

	return Parse(data)
}

// Parse validates raw JSON against the config schema and decodes it.
func Parse(data []byte) (*Config, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfig, "config is not valid JSON")
	}
	if err := fileSchema.Validate(doc); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfig, "config does not match schema")
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfig, "decode config")
	}

	sound, err := homedir.Expand(cfg.NotificationSoundPath)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.KindConfig, "expand notification_sound_path %q", cfg.NotificationSoundPath)
	}
	cfg.NotificationSoundPath = sound
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfig, "invalid config")
	}
	return &cfg, nil
}

// Validate checks the semantic rules the schema cannot express.
func (c *Config) Validate() error {
	var result *multierror.Error

	u, err := url.Parse(c.APIBase)
	switch {
	case err != nil:
		result = multierror.Append(result, fmt.Errorf("api_base: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		result = multierror.Append(result, fmt.Errorf("api_base: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		result = multierror.Append(result, fmt.Errorf("api_base: missing host"))
	}
	if strings.HasSuffix(c.APIBase, ChatCompletionsPath) {
		result = multierror.Append(result, fmt.Errorf("api_base must not include %s", ChatCompletionsPath))
	}
	if strings.TrimSpace(c.APIKey) == "" {
		result = multierror.Append(result, fmt.Errorf("api_key cannot be empty"))
	}
	if strings.TrimSpace(c.Model) == "" {
		result = multierror.Append(result, fmt.Errorf("model cannot be empty"))
	}

	return result.ErrorOrNil()
}

// ChatCompletionsURL returns the endpoint the inference client posts to.
func (c *Config) ChatCompletionsURL() string {
	return c.APIBase + ChatCompletionsPath
}

// String renders the config for the startup log with the API key masked.
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Monitor: %d
  API Base: %s
  API Key: %s
  Model: %s
  Notification Sound: %s
  Notify Overtime: %v
  Ignore Above: %.2fs`,
		c.MonitorToCapture,
		c.APIBase,
		maskKey(c.APIKey),
		c.Model,
		c.NotificationSoundPath,
		c.SendNotificationOvertime,
		c.IgnoreIfTimeRemainingHigherThan,
	)
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
