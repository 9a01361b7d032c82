package candidates

import (
	"context"
	"errors"
	"time"
)

const (
	StatusAnalyzing = "analyzing"
	StatusCompleted = "completed"
	StatusError     = "error"
)

const (
	SourceUpload      = "upload"
	SourcePublicApply = "public_apply"
)

var ErrNotFound = errors.New("candidate not found")

// Candidate is one resume submitted to a job.
type Candidate struct {
	ID             string    `json:"id"`
	JobID          string    `json:"jobId"`
	BatchID        string    `json:"batchId,omitempty"`
	Filename       string    `json:"filename"`
	FilePath       string    `json:"-"`
	Status         string    `json:"status"`
	ApplicantName  string    `json:"applicantName,omitempty"`
	ApplicantEmail string    `json:"applicantEmail,omitempty"`
	ApplicantPhone string    `json:"applicantPhone,omitempty"`
	VehicleStatus  string    `json:"vehicleStatus"`
	Source         string    `json:"source"`
	ErrorMessage   string    `json:"errorMessage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Repo persists candidates.
type Repo interface {
	Create(ctx context.Context, c Candidate) error
	Get(ctx context.Context, id string) (Candidate, error)
	ListByJob(ctx context.Context, jobID string) ([]Candidate, error)
	// SetStatus records the outcome of an analysis. errMessage is stored
	// only for StatusError.
	SetStatus(ctx context.Context, id, status, errMessage string) error
	// MarkFailed moves a candidate that is still analyzing to StatusError.
	// It reports false when the candidate had already left that state.
	MarkFailed(ctx context.Context, id, errMessage string) (bool, error)
	// FillContact sets applicant fields that are still empty.
	FillContact(ctx context.Context, id, name, email, phone string) error
	Delete(ctx context.Context, id string) error
}
