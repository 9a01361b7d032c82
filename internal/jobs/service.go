package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hvac-ats-backend/internal/positions"
	"hvac-ats-backend/internal/shared/telemetry"
)

// Input carries the editable fields of a job.
type Input struct {
	Title                   string  `json:"title" validate:"required,max=200"`
	Position                string  `json:"position" validate:"required,max=200"`
	Description             string  `json:"description" validate:"max=20000"`
	Location                string  `json:"location" validate:"max=200"`
	RequiredYearsExperience float64 `json:"requiredYearsExperience" validate:"gte=0,lte=50"`
	// FlexibleOnTitle defaults to true when omitted.
	FlexibleOnTitle *bool `json:"flexibleOnTitle"`
	VehicleRequired bool  `json:"vehicleRequired"`
}

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) Create(ctx context.Context, employerID string, in Input) (Job, error) {
	if strings.TrimSpace(employerID) == "" {
		return Job{}, fmt.Errorf("%w: employer id is required", ErrInvalidInput)
	}
	now := s.now()
	job := Job{
		ID:         uuid.NewString(),
		EmployerID: employerID,
		Status:     StatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	apply(&job, in)
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	logPosition(job)
	return job, nil
}

// Get returns a job owned by employerID.
func (s *Service) Get(ctx context.Context, employerID, jobID string) (Job, error) {
	return s.Repo.GetForEmployer(ctx, employerID, jobID)
}

// Owns returns ErrNotFound unless employerID owns jobID.
func (s *Service) Owns(ctx context.Context, employerID, jobID string) error {
	_, err := s.Repo.GetForEmployer(ctx, employerID, jobID)
	return err
}

// GetByID loads a job without an ownership check, for background processing.
func (s *Service) GetByID(ctx context.Context, jobID string) (Job, error) {
	return s.Repo.Get(ctx, jobID)
}

// GetOpen returns a job for applicants. Closed jobs are reported as missing.
func (s *Service) GetOpen(ctx context.Context, jobID string) (Job, error) {
	job, err := s.Repo.Get(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if !job.IsOpen() {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (s *Service) List(ctx context.Context, employerID string) ([]Job, error) {
	return s.Repo.ListByEmployer(ctx, employerID)
}

func (s *Service) Update(ctx context.Context, employerID, jobID string, in Input) (Job, error) {
	job, err := s.Repo.GetForEmployer(ctx, employerID, jobID)
	if err != nil {
		return Job{}, err
	}
	apply(&job, in)
	job.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	logPosition(job)
	return job, nil
}

func (s *Service) Close(ctx context.Context, employerID, jobID string) (Job, error) {
	job, err := s.Repo.GetForEmployer(ctx, employerID, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.Status == StatusClosed {
		return job, nil
	}
	job.Status = StatusClosed
	job.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

func (s *Service) Delete(ctx context.Context, employerID, jobID string) error {
	if err := s.Repo.Delete(ctx, employerID, jobID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func apply(job *Job, in Input) {
	job.Title = strings.TrimSpace(in.Title)
	job.Position = strings.TrimSpace(in.Position)
	job.Description = in.Description
	job.Location = strings.TrimSpace(in.Location)
	job.RequiredYearsExperience = in.RequiredYearsExperience
	job.FlexibleOnTitle = true
	if in.FlexibleOnTitle != nil {
		job.FlexibleOnTitle = *in.FlexibleOnTitle
	}
	job.VehicleRequired = in.VehicleRequired
}

// logPosition notes jobs whose position has neither a rubric nor a catalog
// entry and will be scored against the default criteria.
func logPosition(job Job) {
	if positions.Known(job.Position) || positions.TypeOf(job.Position) != positions.TypeGeneric {
		return
	}
	telemetry.Warn("jobs.position_fallback", map[string]any{
		"job_id":   job.ID,
		"position": job.Position,
		"fallback": positions.DefaultPosition,
	})
}
