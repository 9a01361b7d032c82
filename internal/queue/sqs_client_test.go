package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSender struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSender) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	return &sqs.SendMessageOutput{}, f.err
}

func TestSQSClientSend(t *testing.T) {
	fake := &fakeSender{}
	client := newSQSClient(fake, "https://sqs.example/queue")

	if err := client.Send(context.Background(), Message{CandidateID: "c-1", RequestID: "r-1", Version: 1}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if aws.ToString(fake.input.QueueUrl) != "https://sqs.example/queue" {
		t.Fatalf("queue url = %q", aws.ToString(fake.input.QueueUrl))
	}
	got, err := DecodeMessage([]byte(aws.ToString(fake.input.MessageBody)))
	if err != nil || got.CandidateID != "c-1" {
		t.Fatalf("body = %q (%v)", aws.ToString(fake.input.MessageBody), err)
	}
	if v := fake.input.MessageAttributes["candidateId"]; aws.ToString(v.StringValue) != "c-1" {
		t.Fatalf("candidateId attribute = %+v", v)
	}
	if fake.input.MessageGroupId != nil || fake.input.MessageDeduplicationId != nil {
		t.Fatal("standard queues must not carry FIFO fields")
	}
}

func TestSQSClientSendFIFODedupesOnCandidate(t *testing.T) {
	fake := &fakeSender{}
	client := newSQSClient(fake, "https://sqs.example/candidates.fifo")

	if err := client.Send(context.Background(), Message{CandidateID: "c-9"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if aws.ToString(fake.input.MessageDeduplicationId) != "c-9" {
		t.Fatalf("dedup id = %q", aws.ToString(fake.input.MessageDeduplicationId))
	}
	if aws.ToString(fake.input.MessageGroupId) == "" {
		t.Fatal("missing group id")
	}
	if _, ok := fake.input.MessageAttributes["requestId"]; ok {
		t.Fatal("empty request id should not be sent as an attribute")
	}
}

func TestSQSClientSendError(t *testing.T) {
	client := newSQSClient(&fakeSender{err: errors.New("throttled")}, "q")
	if err := client.Send(context.Background(), Message{CandidateID: "c-1"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), " ", ""); err == nil {
		t.Fatal("expected missing url error")
	}
}
