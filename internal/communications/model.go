// Package communications sends email to candidates and logs every attempt.
package communications

import (
	"context"
	"errors"
	"time"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"

	ChannelEmail = "email"
)

var (
	ErrNotFound       = errors.New("communication not found")
	ErrNoRecipient    = errors.New("candidate has no email address")
	ErrNotConnected   = errors.New("gmail is not connected for this account")
	ErrDeliveryFailed = errors.New("message delivery failed")
)

// Message is one row of the communication log.
type Message struct {
	ID           string    `json:"id"`
	PipelineID   string    `json:"pipelineId"`
	CandidateID  string    `json:"candidateId"`
	Channel      string    `json:"channel"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	SentBy       string    `json:"sentBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Repo interface {
	Create(ctx context.Context, m Message) error
	// Finish moves a pending message to sent or failed.
	Finish(ctx context.Context, id, status, errMessage string, at time.Time) error
	ListByPipeline(ctx context.Context, pipelineID string) ([]Message, error)
}
