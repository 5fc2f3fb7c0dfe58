package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/GriffinCanCode/workout-buddy/internal/errors"
	"github.com/GriffinCanCode/workout-buddy/internal/trace"
)

// StatusError reports a non-2xx reply with the body kept verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d %s - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client posts chat-completion requests. No retries, no timeout beyond ctx.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a client for the full chat-completions endpoint URL.
func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends req and decodes the completion envelope.
func (c *Client) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindParse, "marshal chat request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindNetwork, "create request")
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	trace.Inject(ctx, httpReq.Header)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindNetwork, "send chat request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindNetwork, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Wrap(&StatusError{StatusCode: resp.StatusCode, Body: string(data)},
			apperrors.KindNetwork, "chat completion rejected")
	}

	var out ChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindParse, "decode chat response")
	}
	return &out, nil
}

// Content returns the text of the first choice.
func (r *ChatResponse) Content() (string, error) {
	if len(r.Choices) == 0 {
		return "", apperrors.New(apperrors.KindParse, "chat response has no choices")
	}
	return r.Choices[0].Message.Content, nil
}
