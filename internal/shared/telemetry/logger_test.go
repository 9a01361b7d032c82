package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestWriteJSONLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Warn("pipeline.transition", map[string]any{"from": "new", "to": "approved", "err": errors.New("boom"), "msg": "ignored"})

	line := strings.TrimSpace(buf.String())
	var got map[string]any
	if err := json.Unmarshal([]byte(line), &got); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	if got["level"] != "warn" || got["msg"] != "pipeline.transition" {
		t.Fatalf("unexpected envelope: %v", got)
	}
	if got["from"] != "new" || got["to"] != "approved" {
		t.Fatalf("fields missing: %v", got)
	}
	if got["err"] != "boom" {
		t.Fatalf("error field not stringified: %v", got["err"])
	}
	if _, ok := got["ts"].(string); !ok {
		t.Fatalf("missing ts: %v", got)
	}
}

func TestWriteUnmarshalableFallsBack(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("bad", map[string]any{"ch": make(chan int)})
	if !strings.Contains(buf.String(), "logger marshal failed") {
		t.Fatalf("expected fallback line, got %q", buf.String())
	}
}
