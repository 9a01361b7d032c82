package main

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"hvac-ats-backend/internal/queue"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeProcessor struct {
	err  error
	seen []string
}

func (f *fakeProcessor) ProcessCandidate(ctx context.Context, candidateID string) error {
	f.seen = append(f.seen, candidateID)
	return f.err
}

func sqsMessage(id, body string) sqstypes.Message {
	return sqstypes.Message{
		MessageId:     aws.String("m-" + id),
		ReceiptHandle: aws.String("r-" + id),
		Body:          aws.String(body),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func encoded(t *testing.T, msg queue.Message) string {
	t.Helper()
	body, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(body)
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	client := &fakeSQS{}
	proc := &fakeProcessor{}
	body := encoded(t, queue.Message{CandidateID: "cand-1", RequestID: "req-1"})

	handleMessage(context.Background(), client, "queue", proc, sqsMessage("1", body))

	if len(client.deleted) != 1 || client.deleted[0] != "r-1" {
		t.Fatalf("deleted = %v, want [r-1]", client.deleted)
	}
	if len(proc.seen) != 1 || proc.seen[0] != "cand-1" {
		t.Fatalf("processed = %v", proc.seen)
	}
}

func TestWorkerKeepsMessageOnFailure(t *testing.T) {
	client := &fakeSQS{}
	proc := &fakeProcessor{err: errors.New("boom")}
	body := encoded(t, queue.Message{CandidateID: "cand-2", RequestID: "req-2"})

	handleMessage(context.Background(), client, "queue", proc, sqsMessage("2", body))

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %v", client.deleted)
	}
}

func TestWorkerDropsUnrecoverableMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{bad-json"},
		{name: "empty", body: "  "},
		{name: "missing candidate", body: `{"requestId":"req-3"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeSQS{}
			proc := &fakeProcessor{}

			handleMessage(context.Background(), client, "queue", proc, sqsMessage("3", tt.body))

			if len(client.deleted) != 1 {
				t.Fatalf("expected delete, got %v", client.deleted)
			}
			if len(proc.seen) != 0 {
				t.Fatalf("processor should not run, saw %v", proc.seen)
			}
		})
	}
}

func TestReceiveCount(t *testing.T) {
	if got := receiveCount(sqstypes.Message{}); got != 0 {
		t.Fatalf("receiveCount(empty) = %d", got)
	}
	msg := sqstypes.Message{Attributes: map[string]string{"ApproximateReceiveCount": "4"}}
	if got := receiveCount(msg); got != 4 {
		t.Fatalf("receiveCount = %d, want 4", got)
	}
}
