package workerproc

import (
	"context"
	"errors"
	"testing"

	"hvac-ats-backend/internal/analyses"
	"hvac-ats-backend/internal/queue"
)

type recordingProcessor struct {
	got       string
	requestID string
	err       error
}

func (p *recordingProcessor) ProcessCandidate(ctx context.Context, candidateID string) error {
	p.got = candidateID
	p.requestID = analyses.RequestIDFromContext(ctx)
	return p.err
}

func TestParseMessageClassification(t *testing.T) {
	tests := []struct {
		name string
		body string
		want func(error) bool
	}{
		{name: "empty", body: "  ", want: func(err error) bool { var e ErrEmptyBody; return errors.As(err, &e) }},
		{name: "garbage", body: "{nope", want: func(err error) bool { var e ErrDecode; return errors.As(err, &e) }},
		{name: "missing id", body: `{"requestId":"r"}`, want: func(err error) bool { var e ErrMissingCandidateID; return errors.As(err, &e) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMessage(tt.body)
			if !tt.want(err) {
				t.Fatalf("unexpected error %v", err)
			}
			if !Unrecoverable(err) {
				t.Fatalf("expected %v to be unrecoverable", err)
			}
		})
	}
}

func TestHandleMessageProcessesCandidate(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{CandidateID: "cand-1", RequestID: "req-1", Version: 1})
	p := &recordingProcessor{}
	if err := HandleMessage(context.Background(), p, string(body)); err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if p.got != "cand-1" || p.requestID != "req-1" {
		t.Fatalf("processor saw %q / %q", p.got, p.requestID)
	}
}

func TestHandleMessageProcessFailureIsRecoverable(t *testing.T) {
	body, _ := queue.EncodeMessage(queue.Message{CandidateID: "cand-1"})
	boom := errors.New("llm down")
	err := HandleMessage(context.Background(), &recordingProcessor{err: boom}, string(body))
	var perr ErrProcess
	if !errors.As(err, &perr) || !errors.Is(err, boom) {
		t.Fatalf("expected ErrProcess wrapping boom, got %v", err)
	}
	if Unrecoverable(err) {
		t.Fatal("processing failures are left for redelivery")
	}
}

func TestComputeMeta(t *testing.T) {
	if m := ComputeMeta(""); m.BodyLen != 0 || m.BodySHA != "" {
		t.Fatalf("unexpected meta %+v", m)
	}
	if m := ComputeMeta("abc"); m.BodyLen != 3 || len(m.BodySHA) != 64 {
		t.Fatalf("unexpected meta %+v", m)
	}
}
