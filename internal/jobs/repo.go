package jobs

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidInput = errors.New("invalid job input")
	ErrClosed       = errors.New("job is closed")
)

// Repo persists jobs. Employer scoped lookups return ErrNotFound for jobs
// owned by someone else.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Get(ctx context.Context, jobID string) (Job, error)
	GetForEmployer(ctx context.Context, employerID, jobID string) (Job, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, employerID, jobID string) error
}
