package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hvac-ats-backend/internal/llm"
)

func TestCompleteSendsMessagesRequest(t *testing.T) {
	var got map[string]any
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %s", r.URL.Path)
		}
		headers = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"claude-x","content":[{"type":"text","text":"Here you go: {\"overallScore\": 91}"}],"usage":{"input_tokens":1200,"output_tokens":300}}`))
	}))
	defer server.Close()

	client, err := NewClient("secret", "claude-x", 0, WithBaseURL(server.URL+"/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := client.Complete(context.Background(), llm.NewRequest("score this resume"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if headers.Get("x-api-key") != "secret" || headers.Get("anthropic-version") != anthropicVersion {
		t.Fatalf("missing auth headers: %v", headers)
	}
	if got["max_tokens"] != float64(4096) || got["temperature"] != float64(0) {
		t.Fatalf("unexpected sampling params: %v", got)
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages = %v", got["messages"])
	}
	if resp.Text != `Here you go: {"overallScore": 91}` || resp.Provider != "anthropic" || resp.InputTokens != 1200 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCompleteMapsStatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer server.Close()

	client, _ := NewClient("secret", "", 0, WithBaseURL(server.URL))
	_, err := client.Complete(context.Background(), llm.NewRequest("x"))
	var statusErr *llm.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != 529 || statusErr.Body != "overloaded_error: Overloaded" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if !llm.ShouldRetry(err) {
		t.Fatal("overloaded should be retryable")
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	client, _ := NewClient("secret", "", 0, WithBaseURL(server.URL))
	if _, err := client.Complete(context.Background(), llm.NewRequest("x")); !errors.Is(err, llm.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
