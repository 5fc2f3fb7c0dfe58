// Package config loads the watcher configuration from a JSON file
package config

// Configuration defaults
const (
	// DefaultPath is looked up in the working directory when --config is not given
	DefaultPath = "config.json"

	// ChatCompletionsPath is appended to api_base for every request
	ChatCompletionsPath = "/chat/completions"
)
