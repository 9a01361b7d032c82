package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"hvac-ats-backend/internal/llm"
)

const providerName = "openai"

var apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         *float32      `json:"temperature,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// errTemperatureUnsupported marks models that reject an explicit temperature.
var errTemperatureUnsupported = errors.New("openai temperature unsupported")

// Complete sends one user message. Models that refuse temperature 0 are
// retried once without it.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	sendTemp := temperatureAllowed(c.model)
	resp, err := c.completeOnce(ctx, req, sendTemp)
	if errors.Is(err, errTemperatureUnsupported) && sendTemp {
		log.Printf("openai model=%s rejected temperature, retrying without it", c.model)
		resp, err = c.completeOnce(ctx, req, false)
	}
	return resp, err
}

// Provider implements llm.Identity.
func (c *Client) Provider() string { return providerName }

// Model implements llm.Identity.
func (c *Client) Model() string { return c.model }

func (c *Client) completeOnce(ctx context.Context, req llm.Request, sendTemp bool) (llm.Response, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:               c.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
	}
	if sendTemp {
		temp := req.Temperature
		body.Temperature = &temp
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return llm.Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return llm.Response{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return llm.Response{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Response{}, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode >= 300 {
			return llm.Response{}, &llm.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: truncate(string(raw))}
		}
		return llm.Response{}, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		if isTemperatureRejection(parsed.Error.Message) {
			return llm.Response{}, fmt.Errorf("%w: %s", errTemperatureUnsupported, parsed.Error.Message)
		}
		if resp.StatusCode >= 300 {
			return llm.Response{}, &llm.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: parsed.Error.Message}
		}
		return llm.Response{}, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= 300 {
		return llm.Response{}, &llm.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: truncate(string(raw))}
	}
	if len(parsed.Choices) == 0 {
		return llm.Response{}, fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return llm.Response{}, llm.ErrEmptyResponse
	}

	out := llm.Response{Text: content, Provider: providerName, Model: c.model}
	if parsed.Model != "" {
		out.Model = parsed.Model
	}
	if parsed.Usage != nil {
		out.InputTokens = parsed.Usage.PromptTokens
		out.OutputTokens = parsed.Usage.CompletionTokens
	}
	return out, nil
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

// temperatureAllowed is false for gpt-5 models and anything listed in
// LLM_NO_TEMP0_MODELS.
func temperatureAllowed(model string) bool {
	if isGPT5(model) {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(model))
	for _, denied := range strings.Split(os.Getenv("LLM_NO_TEMP0_MODELS"), ",") {
		if d := strings.ToLower(strings.TrimSpace(denied)); d != "" && d == normalized {
			return false
		}
	}
	return true
}

func isTemperatureRejection(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "temperature") && (strings.Contains(msg, "unsupported") || strings.Contains(msg, "does not support"))
}

func truncate(s string) string {
	const limit = 500
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

var _ llm.Client = (*Client)(nil)
