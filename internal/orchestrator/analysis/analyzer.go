package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/workout-buddy/internal/inference"
	"github.com/GriffinCanCode/workout-buddy/internal/orchestrator/screen"
	"github.com/GriffinCanCode/workout-buddy/internal/trace"
)

// Completer sends a chat-completion request.
type Completer interface {
	Complete(ctx context.Context, req *inference.ChatRequest) (*inference.ChatResponse, error)
}

// BurstSource produces the frames for one cycle.
type BurstSource interface {
	Collect(ctx context.Context) (*screen.Burst, error)
}

// Result is the outcome of one cycle.
type Result struct {
	Response *ModelResponse
	// Estimate is the compensated time remaining in seconds, nil when the
	// model reported no number. It may be negative.
	Estimate *float64
	Latency  time.Duration
	// Distance is the burst's first-to-last pHash distance, -1 if unknown.
	Distance int
}

// Analyzer runs capture, inference and compensation.
type Analyzer struct {
	burst     BurstSource
	completer Completer
	model     string
	now       func() time.Time
}

// New creates an analyzer for the given model.
func New(burst BurstSource, completer Completer, model string) *Analyzer {
	return &Analyzer{burst: burst, completer: completer, model: model, now: time.Now}
}

// BuildRequest assembles the system turn and the user turn with the images in order.
func (a *Analyzer) BuildRequest(images []string) *inference.ChatRequest {
	user := make([]inference.ContentPart, 0, len(images)+1)
	user = append(user, inference.TextPart(Task))
	for _, uri := range images {
		user = append(user, inference.ImagePart(uri))
	}
	return &inference.ChatRequest{
		Model: a.model,
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: []inference.ContentPart{inference.TextPart(SystemPrompt())}},
			{Role: inference.RoleUser, Content: user},
		},
		ResponseFormat: inference.StructuredOutput(ResponseSchema()),
	}
}

// Run executes one cycle. Capture, network and parse failures are returned as-is.
func (a *Analyzer) Run(ctx context.Context) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, "analysis")
	defer span.End()
	log := trace.Logger(ctx)

	burst, err := a.burst.Collect(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("sending request to LLM", "model", a.model, "images", len(burst.Frames))
	resp, err := a.completer.Complete(ctx, a.BuildRequest(burst.DataURIs()))
	if err != nil {
		return nil, err
	}
	elapsed := a.now().Sub(burst.Anchor)
	log.Info("model response received", "latency", fmt.Sprintf("%.2fs", elapsed.Seconds()))
	if resp.Usage != nil {
		log.Debug("token usage",
			"prompt", resp.Usage.PromptTokens,
			"completion", resp.Usage.CompletionTokens,
			"total", resp.Usage.TotalTokens)
	}

	content, err := resp.Content()
	if err != nil {
		return nil, err
	}
	parsed, warnings, err := ParseModelResponse(content)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		log.Warn("model response violates schema constraint", "detail", w)
	}

	result := &Result{Response: parsed, Latency: elapsed, Distance: burst.Distance}
	if parsed.TimeRemainingInSeconds != nil {
		est := Compensate(*parsed.TimeRemainingInSeconds, elapsed)
		result.Estimate = &est
	}
	span.SetAttr("latency", elapsed)
	return result, nil
}
