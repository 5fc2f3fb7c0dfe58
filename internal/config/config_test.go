package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

const validConfig = `{
	"monitor_to_capture": 1,
	"api_base": "https://api.example.com/v1/",
	"api_key": "sk-test-0123456789",
	"model": "gpt-4o-mini",
	"notification_sound_path": "/tmp/ding.wav",
	"send_notification_overtime": true,
	"ignore_if_time_remaining_higher_than": 90.5
}`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.MonitorToCapture != 1 {
		t.Errorf("MonitorToCapture = %d, want %d", cfg.MonitorToCapture, 1)
	}
	if cfg.APIBase != "https://api.example.com/v1" {
		t.Errorf("APIBase = %q, want trailing slash trimmed", cfg.APIBase)
	}
	if cfg.APIKey != "sk-test-0123456789" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gpt-4o-mini")
	}
	if cfg.NotificationSoundPath != "/tmp/ding.wav" {
		t.Errorf("NotificationSoundPath = %q", cfg.NotificationSoundPath)
	}
	if !cfg.SendNotificationOvertime {
		t.Error("SendNotificationOvertime should be true")
	}
	if cfg.IgnoreIfTimeRemainingHigherThan != 90.5 {
		t.Errorf("IgnoreIfTimeRemainingHigherThan = %f, want %f", cfg.IgnoreIfTimeRemainingHigherThan, 90.5)
	}
	if got := cfg.ChatCompletionsURL(); got != "https://api.example.com/v1/chat/completions" {
		t.Errorf("ChatCompletionsURL() = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !apperrors.IsKind(err, apperrors.KindConfig) {
		t.Fatalf("Load() error = %v, want config error", err)
	}
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
		body    string
	}{
		{name: "not json", body: "{monitor_to_capture: 1"},
		{name: "missing api_key", replace: [2]string{`"api_key": "sk-test-0123456789",`, ""}},
		{name: "empty api_key", replace: [2]string{`"sk-test-0123456789"`, `"  "`}},
		{name: "mistyped monitor", replace: [2]string{`"monitor_to_capture": 1`, `"monitor_to_capture": "1"`}},
		{name: "negative monitor", replace: [2]string{`"monitor_to_capture": 1`, `"monitor_to_capture": -1`}},
		{name: "fractional monitor", replace: [2]string{`"monitor_to_capture": 1`, `"monitor_to_capture": 1.5`}},
		{name: "mistyped overtime flag", replace: [2]string{`"send_notification_overtime": true`, `"send_notification_overtime": "yes"`}},
		{name: "mistyped threshold", replace: [2]string{`90.5`, `"90"`}},
		{name: "missing threshold", replace: [2]string{`,
	"ignore_if_time_remaining_higher_than": 90.5`, ""}},
		{name: "endpoint in api_base", replace: [2]string{`https://api.example.com/v1/`, `https://api.example.com/v1/chat/completions`}},
		{name: "api_base without scheme", replace: [2]string{`https://api.example.com/v1/`, `api.example.com`}},
		{name: "not an object", body: `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = strings.Replace(validConfig, tt.replace[0], tt.replace[1], 1)
				if body == validConfig {
					t.Fatalf("replacement %q did not apply", tt.replace[0])
				}
			}

			cfg, err := Parse([]byte(body))
			if err == nil {
				t.Fatalf("Parse() = %+v, want error", cfg)
			}
			if !apperrors.IsKind(err, apperrors.KindConfig) {
				t.Errorf("Parse() error kind = %v, want config", apperrors.KindOf(err))
			}
		})
	}
}

func TestParseExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	body := strings.Replace(validConfig, `/tmp/ding.wav`, `~/sounds/ding.wav`, 1)
	cfg, err := Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := filepath.Join(home, "sounds", "ding.wav")
	if cfg.NotificationSoundPath != want {
		t.Errorf("NotificationSoundPath = %q, want %q", cfg.NotificationSoundPath, want)
	}
}

func TestParseIgnoresUnknownFields(t *testing.T) {
	body := strings.Replace(validConfig, `"model"`, `"comment": "x", "model"`, 1)
	if _, err := Parse([]byte(body)); err != nil {
		t.Errorf("Parse() error = %v, want unknown fields ignored", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{APIBase: "ftp://", APIKey: "", Model: ""}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"api_base", "api_key", "model"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q should mention %s", err.Error(), want)
		}
	}
}

func TestStringMasksKey(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "sk-test-0123456789") {
		t.Error("String() leaks the API key")
	}
	if !strings.Contains(s, "sk-t**********6789") {
		t.Errorf("String() should keep the key edges, got:\n%s", s)
	}
	if !strings.Contains(s, "gpt-4o-mini") {
		t.Error("String() should include the model")
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key, want string
	}{
		{"", ""},
		{"short", "*****"},
		{"12345678", "********"},
		{"123456789", "1234*6789"},
	}

	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
