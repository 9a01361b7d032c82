package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"hvac-ats-backend/internal/llm"
)

func TestCompleteOmitsTemperatureForDenylist(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var bodyMu sync.Mutex
	var lastBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodyMu.Lock()
		lastBody = payload
		bodyMu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	apiURL = server.URL
	t.Setenv("LLM_NO_TEMP0_MODELS", "o3-mini, gpt-4.1-nano")

	client, err := NewClient("test-key", "o3-mini", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Complete(context.Background(), llm.NewRequest("resume")); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	bodyMu.Lock()
	_, hasTemp := lastBody["temperature"]
	maxTokens := lastBody["max_completion_tokens"]
	bodyMu.Unlock()
	if hasTemp {
		t.Fatalf("expected temperature to be omitted for denylisted model")
	}
	if maxTokens != float64(4096) {
		t.Fatalf("max_completion_tokens = %v", maxTokens)
	}
}

func TestCompleteRetriesWithoutTemperature(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var reqBodies []map[string]any
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		reqBodies = append(reqBodies, payload)
		callNum := len(reqBodies)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if callNum == 1 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unsupported value: 'temperature' does not support 0 with this model. Only the default (1) value is supported.","type":"invalid_request_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"model":"gpt-4o-mini-2024","choices":[{"message":{"content":"{\"overallScore\":80}"}}],"usage":{"prompt_tokens":10,"completion_tokens":5}}`))
	}))
	defer server.Close()

	apiURL = server.URL
	t.Setenv("LLM_NO_TEMP0_MODELS", "")

	client, err := NewClient("test-key", "gpt-4o-mini", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resp, err := client.Complete(context.Background(), llm.NewRequest("resume"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Model != "gpt-4o-mini-2024" || resp.InputTokens != 10 || resp.OutputTokens != 5 {
		t.Fatalf("unexpected response meta: %+v", resp)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(reqBodies) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqBodies))
	}
	if _, ok := reqBodies[0]["temperature"]; !ok {
		t.Fatalf("expected first request to include temperature")
	}
	if _, ok := reqBodies[1]["temperature"]; ok {
		t.Fatalf("expected retry request to omit temperature")
	}
}

func TestCompleteNoInfiniteRetry(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var mu sync.Mutex
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"Unsupported value: 'temperature' does not support 0 with this model.","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	apiURL = server.URL
	client, err := NewClient("test-key", "gpt-4o-mini", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.Complete(context.Background(), llm.NewRequest("resume")); err == nil {
		t.Fatalf("expected error on repeated temperature unsupported response")
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 requests (one retry), got %d", calls)
	}
}

func TestCompleteReturnsStatusError(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`upstream unavailable`))
	}))
	defer server.Close()
	apiURL = server.URL

	client, _ := NewClient("test-key", "gpt-4o", 0)
	_, err := client.Complete(context.Background(), llm.NewRequest("resume"))
	if !llm.ShouldRetry(err) {
		t.Fatalf("expected retryable status error, got %v", err)
	}
}
