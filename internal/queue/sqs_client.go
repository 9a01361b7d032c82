package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const (
	defaultRegion = "us-east-1"
	fifoSuffix    = ".fifo"
	// fifoGroupID keeps ordering loose: all candidates share one group.
	fifoGroupID = "candidates"
)

// Client hands candidates to the analysis workers.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// sqsSender is the part of *sqs.Client the producer uses.
type sqsSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSClient sends candidate messages to AWS SQS. On a FIFO queue the
// candidate id is the deduplication id, so a double dispatch inside the
// five minute window is dropped by SQS.
type SQSClient struct {
	client   sqsSender
	queueURL string
	fifo     bool
}

// NewSQSClient constructs an SQS-backed queue client.
func NewSQSClient(ctx context.Context, queueURL, region string) (*SQSClient, error) {
	queueURL = strings.TrimSpace(queueURL)
	if queueURL == "" {
		return nil, fmt.Errorf("ATS_SQS_QUEUE_URL is required")
	}
	if strings.TrimSpace(region) == "" {
		region = defaultRegion
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSQSClient(sqs.NewFromConfig(cfg), queueURL), nil
}

func newSQSClient(sender sqsSender, queueURL string) *SQSClient {
	return &SQSClient{
		client:   sender,
		queueURL: queueURL,
		fifo:     strings.HasSuffix(queueURL, fifoSuffix),
	}
}

// Send enqueues msg with the candidate and request ids as message
// attributes for filtering in the console.
func (s *SQSClient) Send(ctx context.Context, msg Message) error {
	payload, err := EncodeMessage(msg)
	if err != nil {
		return fmt.Errorf("encode sqs message: %w", err)
	}

	in := &sqs.SendMessageInput{
		QueueUrl:          aws.String(s.queueURL),
		MessageBody:       aws.String(string(payload)),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{},
	}
	addAttribute(in.MessageAttributes, "candidateId", msg.CandidateID)
	addAttribute(in.MessageAttributes, "requestId", msg.RequestID)
	if s.fifo {
		in.MessageGroupId = aws.String(fifoGroupID)
		in.MessageDeduplicationId = aws.String(msg.CandidateID)
	}

	if _, err := s.client.SendMessage(ctx, in); err != nil {
		return fmt.Errorf("sqs send message candidate=%s: %w", msg.CandidateID, err)
	}
	return nil
}

func addAttribute(attrs map[string]sqstypes.MessageAttributeValue, name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	attrs[name] = sqstypes.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(value),
	}
}

var _ Client = (*SQSClient)(nil)
