package llm

import (
	"context"
	"errors"
	"fmt"
)

// Defaults for resume analysis calls.
const (
	DefaultMaxTokens   = 4096
	DefaultTemperature = 0
)

// Client abstracts LLM providers.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Request is a single-turn completion request.
type Request struct {
	Prompt      string
	System      string
	Temperature float32
	MaxTokens   int
}

// NewRequest returns a request with the analysis defaults applied.
func NewRequest(prompt string) Request {
	return Request{
		Prompt:      prompt,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// Response carries the model's free-text reply.
type Response struct {
	Text         string
	Provider     string
	Model        string
	InputTokens  int
	OutputTokens int
}

// StatusError is returned when a provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s http status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// ErrEmptyResponse is returned when a provider answers without content.
var ErrEmptyResponse = errors.New("llm response empty content")

// Identity is implemented by clients that know their provider and model.
type Identity interface {
	Provider() string
	Model() string
}
