package communications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/telemetry"
	"hvac-ats-backend/internal/shared/validate"
	"hvac-ats-backend/internal/users"
)

// Pipeline is the part of the pipeline service messaging needs.
type Pipeline interface {
	Get(ctx context.Context, id string) (pipeline.Entry, error)
	MarkContacted(ctx context.Context, id, via, changedBy string) (pipeline.Entry, error)
}

type JobAccess interface {
	Owns(ctx context.Context, employerID, jobID string) error
}

type CandidateReader interface {
	Get(ctx context.Context, id string) (candidates.Candidate, error)
}

type UserReader interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// SendInput is the composed message.
type SendInput struct {
	Subject string `json:"subject" validate:"required,max=300"`
	Body    string `json:"body" validate:"required,max=20000"`
}

type Service struct {
	Repo       Repo
	Pipeline   Pipeline
	Jobs       JobAccess
	Candidates CandidateReader
	Users      UserReader
	Sender     Sender
	Now        func() time.Time
}

// Send emails the candidate behind pipelineID. The log row is written as
// pending before delivery and finished afterwards, so a failed send is
// still recorded. A delivered message marks the entry contacted.
func (s *Service) Send(ctx context.Context, employerID, pipelineID string, in SendInput) (Message, error) {
	if err := validate.Struct(in); err != nil {
		return Message{}, err
	}
	entry, err := s.authorize(ctx, employerID, pipelineID)
	if err != nil {
		return Message{}, err
	}
	cand, err := s.Candidates.Get(ctx, entry.CandidateID)
	if err != nil {
		return Message{}, err
	}
	if strings.TrimSpace(cand.ApplicantEmail) == "" {
		return Message{}, ErrNoRecipient
	}
	from, err := s.Users.GetByID(ctx, employerID)
	if err != nil {
		return Message{}, err
	}

	now := s.now()
	msg := Message{
		ID:          uuid.NewString(),
		PipelineID:  entry.ID,
		CandidateID: cand.ID,
		Channel:     ChannelEmail,
		Recipient:   cand.ApplicantEmail,
		Subject:     in.Subject,
		Body:        in.Body,
		Status:      StatusPending,
		SentBy:      employerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		return Message{}, fmt.Errorf("log message: %w", err)
	}

	sendErr := s.Sender.Send(ctx, from, Email{To: msg.Recipient, Subject: msg.Subject, Body: msg.Body})
	finishCtx := context.WithoutCancel(ctx)
	msg.UpdatedAt = s.now()
	if sendErr != nil {
		msg.Status = StatusFailed
		msg.ErrorMessage = sendErr.Error()
		if err := s.Repo.Finish(finishCtx, msg.ID, StatusFailed, msg.ErrorMessage, msg.UpdatedAt); err != nil {
			telemetry.Error("communications.finish_failed", map[string]any{"message_id": msg.ID, "error": err.Error()})
		}
		metrics.IncCommunicationFailed()
		telemetry.Warn("communications.send_failed", map[string]any{
			"pipeline_id": entry.ID,
			"message_id":  msg.ID,
			"error":       sendErr.Error(),
		})
		if errors.Is(sendErr, ErrNotConnected) {
			return msg, sendErr
		}
		return msg, fmt.Errorf("%w: %v", ErrDeliveryFailed, sendErr)
	}

	msg.Status = StatusSent
	if err := s.Repo.Finish(finishCtx, msg.ID, StatusSent, "", msg.UpdatedAt); err != nil {
		return msg, fmt.Errorf("finish message: %w", err)
	}
	metrics.IncCommunicationSent()
	if _, err := s.Pipeline.MarkContacted(finishCtx, entry.ID, ChannelEmail, employerID); err != nil {
		return msg, fmt.Errorf("mark contacted: %w", err)
	}
	telemetry.Info("communications.sent", map[string]any{
		"pipeline_id": entry.ID,
		"message_id":  msg.ID,
	})
	return msg, nil
}

// List returns the log for one pipeline entry, newest first.
func (s *Service) List(ctx context.Context, employerID, pipelineID string) ([]Message, error) {
	entry, err := s.authorize(ctx, employerID, pipelineID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByPipeline(ctx, entry.ID)
}

func (s *Service) authorize(ctx context.Context, employerID, pipelineID string) (pipeline.Entry, error) {
	entry, err := s.Pipeline.Get(ctx, pipelineID)
	if err != nil {
		return pipeline.Entry{}, err
	}
	if err := s.Jobs.Owns(ctx, employerID, entry.JobID); err != nil {
		return pipeline.Entry{}, pipeline.ErrNotFound
	}
	return entry, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
