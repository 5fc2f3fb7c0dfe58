package analysis

import (
	_ "embed"
	"encoding/json"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
)

//go:embed response_schema.json
var responseSchemaJSON []byte

//go:embed system_prompt.txt
var systemPrompt string

var responseSchema = jsonschema.MustCompileString("response.schema.json", string(responseSchemaJSON))

// ResponseSchema returns the schema sent as the structured-output format.
func ResponseSchema() json.RawMessage {
	return json.RawMessage(responseSchemaJSON)
}

// SystemPrompt returns the fixed instructions sent with every request.
func SystemPrompt() string { return systemPrompt }

// ModelResponse is the model's structured answer.
type ModelResponse struct {
	ImageComparisonAndAnalysis string   `json:"image_comparison_and_analysis"`
	ImagesAreRelevant          bool     `json:"images_are_relevant"`
	Reasoning                  string   `json:"reasoning"`
	TimeRemainingInSeconds     *float64 `json:"time_remaining_in_seconds,omitempty"`
}

// ParseModelResponse decodes the assistant content. Structural violations
// (bad JSON, wrong types, missing required fields) are parse errors; value
// constraint violations are returned as warnings.
func ParseModelResponse(content string) (*ModelResponse, []string, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.KindParse, "model content is not valid JSON")
	}
	if obj, ok := doc.(map[string]interface{}); ok {
		if v, present := obj[fieldTimeRemaining]; present && v == nil {
			delete(obj, fieldTimeRemaining)
		}
	}

	var warnings []string
	if err := responseSchema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, nil, apperrors.Wrap(err, apperrors.KindParse, "validate model content")
		}
		for _, leaf := range leaves(ve) {
			if !softKeywords[path.Base(leaf.KeywordLocation)] {
				return nil, nil, apperrors.Wrap(err, apperrors.KindParse, "model content does not match schema")
			}
			warnings = append(warnings, leaf.InstanceLocation+": "+leaf.Message)
		}
	}

	var resp ModelResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, nil, apperrors.Wrap(err, apperrors.KindParse, "decode model content")
	}
	return &resp, warnings, nil
}

func leaves(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leaves(c)...)
	}
	return out
}

// Compensate subtracts the inference latency from the reported time remaining.
// The result is neither clamped nor rounded.
func Compensate(reported float64, elapsed time.Duration) float64 {
	return reported - elapsed.Seconds()
}
