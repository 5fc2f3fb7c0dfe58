// Package inference talks to an OpenAI-compatible chat-completions endpoint
package inference

// Message roles
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

const (
	partText     = "text"
	partImageURL = "image_url"

	formatJSONSchema = "json_schema"
	schemaName       = "schema"

	contentTypeJSON = "application/json"
)
