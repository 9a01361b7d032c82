package pipeline

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("pipeline entry not found")
	// ErrConflict means the entry changed status between validation and write.
	ErrConflict     = errors.New("pipeline entry was modified concurrently")
	ErrInvalidInput = errors.New("invalid pipeline input")
)

// Entry is one candidate's position in a job's hiring pipeline.
type Entry struct {
	ID                string     `json:"id"`
	CandidateID       string     `json:"candidateId"`
	JobID             string     `json:"jobId"`
	Status            Status     `json:"pipelineStatus"`
	Tier              string     `json:"tier"`
	TierScore         float64    `json:"tierScore"`
	StarRating        float64    `json:"starRating"`
	GiveThemAChance   bool       `json:"giveThemAChance"`
	VehicleStatus     string     `json:"vehicleStatus"`
	AISummary         string     `json:"aiSummary"`
	ContactedVia      string     `json:"contactedVia,omitempty"`
	ContactedAt       *time.Time `json:"contactedAt,omitempty"`
	EvaluatedPosition string     `json:"evaluatedPosition"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	// Filled by list queries.
	CandidateName  string `json:"candidateName,omitempty"`
	CandidateEmail string `json:"candidateEmail,omitempty"`
	CandidatePhone string `json:"candidatePhone,omitempty"`
}

// AuditEntry records one accepted status change.
type AuditEntry struct {
	ID         string    `json:"id"`
	PipelineID string    `json:"pipelineId"`
	From       Status    `json:"fromStatus"`
	To         Status    `json:"toStatus"`
	ChangedBy  string    `json:"changedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Filter narrows ListByJob. Zero values match everything.
type Filter struct {
	Status Status
	Tier   string
}

// Change is one validated status move.
type Change struct {
	PipelineID string
	From       Status
	To         Status
}

// Repo persists pipeline entries and their audit trail.
type Repo interface {
	Create(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	GetMany(ctx context.Context, ids []string) ([]Entry, error)
	ListByJob(ctx context.Context, jobID string, f Filter) ([]Entry, error)
	// ApplyChanges writes every change and its audit row together. A change
	// whose stored status no longer equals From fails the whole call with
	// ErrConflict.
	ApplyChanges(ctx context.Context, changes []Change, changedBy string, at time.Time) error
	SetNotes(ctx context.Context, id, notes string, at time.Time) error
	SetChance(ctx context.Context, id string, chance bool, at time.Time) error
	MarkContacted(ctx context.Context, id, via string, at time.Time) error
	History(ctx context.Context, id string) ([]AuditEntry, error)
}
