// Package applications accepts resumes from the public job page.
package applications

import (
	"context"
	"fmt"
	"io"

	"hvac-ats-backend/internal/analyses"
	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/scoring"
	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/telemetry"
	"hvac-ats-backend/internal/shared/validate"
)

// OpenJobs resolves jobs that still accept applications.
type OpenJobs interface {
	GetOpen(ctx context.Context, jobID string) (jobs.Job, error)
}

// Intake registers resumes and processes them out of band.
type Intake interface {
	Submit(ctx context.Context, in analyses.SubmitInput) (candidates.Candidate, error)
	Dispatch(ctx context.Context, candidateIDs ...string)
	Status(ctx context.Context, candidateID string) (string, error)
}

// Input is the applicant's form.
type Input struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone" validate:"max=40"`
	VehicleStatus string `json:"vehicleStatus" validate:"omitempty,oneof=has_vehicle no_vehicle unknown"`
}

type Service struct {
	Jobs   OpenJobs
	Intake Intake
}

func NewService(jobs OpenJobs, intake Intake) *Service {
	return &Service{Jobs: jobs, Intake: intake}
}

// Apply stores the resume against an open job and starts analysis in the
// background. The result of that analysis is never reported to the caller.
func (s *Service) Apply(ctx context.Context, jobID string, in Input, fileName string, file io.Reader) (candidates.Candidate, error) {
	if err := validate.Struct(in); err != nil {
		return candidates.Candidate{}, err
	}
	job, err := s.Jobs.GetOpen(ctx, jobID)
	if err != nil {
		return candidates.Candidate{}, err
	}
	if file == nil || fileName == "" {
		return candidates.Candidate{}, fmt.Errorf("%w: resume is required", analyses.ErrInvalidInput)
	}
	c, err := s.Intake.Submit(ctx, analyses.SubmitInput{
		JobID:          job.ID,
		FileName:       fileName,
		File:           file,
		ApplicantName:  in.Name,
		ApplicantEmail: in.Email,
		ApplicantPhone: in.Phone,
		VehicleStatus:  scoring.ParseVehicleStatus(in.VehicleStatus),
		Source:         candidates.SourcePublicApply,
	})
	if err != nil {
		return candidates.Candidate{}, err
	}
	metrics.IncPublicApply()
	telemetry.Info("applications.received", map[string]any{
		"request_id":   analyses.RequestIDFromContext(ctx),
		"job_id":       job.ID,
		"candidate_id": c.ID,
	})
	s.Intake.Dispatch(ctx, c.ID)
	return c, nil
}

// Status reports the candidate's processing state for polling.
func (s *Service) Status(ctx context.Context, candidateID string) (string, error) {
	return s.Intake.Status(ctx, candidateID)
}
