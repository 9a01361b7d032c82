package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hvac-ats-backend/internal/analyzer"
	"hvac-ats-backend/internal/candidates"
	"hvac-ats-backend/internal/extract"
	"hvac-ats-backend/internal/jobs"
	"hvac-ats-backend/internal/llm"
	"hvac-ats-backend/internal/pipeline"
	"hvac-ats-backend/internal/queue"
	"hvac-ats-backend/internal/scoring"
	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/storage/db"
	"hvac-ats-backend/internal/shared/storage/object"
	"hvac-ats-backend/internal/shared/telemetry"
)

const (
	// MaxBatchFiles caps one batch upload.
	MaxBatchFiles           = 25
	defaultBatchConcurrency = 3
	failTimeout             = 10 * time.Second
)

// ResumeAnalyzer scores a stored resume and deletes it afterwards.
type ResumeAnalyzer interface {
	AnalyzeResume(ctx context.Context, req analyzer.Request) (*analyzer.Analysis, error)
}

// JobSource loads jobs with and without an ownership check.
type JobSource interface {
	Get(ctx context.Context, employerID, jobID string) (jobs.Job, error)
	GetByID(ctx context.Context, jobID string) (jobs.Job, error)
}

// Service stores resumes, runs analyses and records their outcome.
type Service struct {
	DB         *db.Handle
	Analyzer   ResumeAnalyzer
	Store      object.Store
	Jobs       JobSource
	Candidates candidates.Repo
	Analyses   Repo
	// Queue is optional. When set, background work is sent to the worker
	// instead of running in this process.
	Queue            queue.Client
	BatchConcurrency int
	Now              func() time.Time
}

// SubmitInput describes one resume to register against a job.
type SubmitInput struct {
	JobID          string
	BatchID        string
	FileName       string
	File           io.Reader
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	VehicleStatus  scoring.VehicleStatus
	Source         string
}

// File is one part of a batch upload.
type File struct {
	Name   string
	Reader io.Reader
}

// Submit stores the resume and creates a candidate in the analyzing state.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (candidates.Candidate, error) {
	if strings.TrimSpace(in.FileName) == "" || in.File == nil {
		return candidates.Candidate{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	obj, err := s.Store.Save(ctx, in.JobID, in.FileName, in.File)
	if err != nil {
		return candidates.Candidate{}, fmt.Errorf("store resume: %w", err)
	}
	source := in.Source
	if source == "" {
		source = candidates.SourceUpload
	}
	vehicle := in.VehicleStatus
	if vehicle == "" {
		vehicle = scoring.VehicleUnknown
	}
	now := s.now()
	c := candidates.Candidate{
		ID:             uuid.NewString(),
		JobID:          in.JobID,
		BatchID:        in.BatchID,
		Filename:       in.FileName,
		FilePath:       obj.Key,
		Status:         candidates.StatusAnalyzing,
		ApplicantName:  strings.TrimSpace(in.ApplicantName),
		ApplicantEmail: strings.TrimSpace(in.ApplicantEmail),
		ApplicantPhone: strings.TrimSpace(in.ApplicantPhone),
		VehicleStatus:  string(vehicle),
		Source:         source,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Candidates.Create(ctx, c); err != nil {
		s.discard(ctx, obj.Key)
		return candidates.Candidate{}, fmt.Errorf("create candidate: %w", err)
	}
	return c, nil
}

// UploadAndAnalyze stores one resume and analyzes it before returning. On
// analysis failure the candidate is left in the error state and the
// outcome still carries it.
func (s *Service) UploadAndAnalyze(ctx context.Context, employerID, jobID, fileName string, file io.Reader) (Outcome, error) {
	job, err := s.Jobs.Get(ctx, employerID, jobID)
	if err != nil {
		return Outcome{}, err
	}
	c, err := s.Submit(ctx, SubmitInput{JobID: job.ID, FileName: fileName, File: file, Source: candidates.SourceUpload})
	if err != nil {
		return Outcome{}, err
	}
	return s.process(ctx, c, job)
}

// UploadBatch registers every file under one batch id and hands them to
// background processing.
func (s *Service) UploadBatch(ctx context.Context, employerID, jobID string, files []File) (string, []candidates.Candidate, error) {
	if len(files) == 0 {
		return "", nil, fmt.Errorf("%w: at least one file is required", ErrInvalidInput)
	}
	if len(files) > MaxBatchFiles {
		return "", nil, fmt.Errorf("%w: at most %d files", ErrTooManyFiles, MaxBatchFiles)
	}
	job, err := s.Jobs.Get(ctx, employerID, jobID)
	if err != nil {
		return "", nil, err
	}
	batchID := uuid.NewString()
	created := make([]candidates.Candidate, 0, len(files))
	ids := make([]string, 0, len(files))
	for _, f := range files {
		c, err := s.Submit(ctx, SubmitInput{JobID: job.ID, BatchID: batchID, FileName: f.Name, File: f.Reader, Source: candidates.SourceUpload})
		if err != nil {
			// Already registered files still get processed.
			s.Dispatch(ctx, ids...)
			return "", nil, err
		}
		created = append(created, c)
		ids = append(ids, c.ID)
	}
	telemetry.Info("analysis.batch_submitted", map[string]any{
		"request_id": RequestIDFromContext(ctx),
		"job_id":     job.ID,
		"batch_id":   batchID,
		"count":      len(ids),
	})
	s.Dispatch(ctx, ids...)
	return batchID, created, nil
}

// Dispatch processes candidates in the background. The caller's context
// only contributes its request id.
func (s *Service) Dispatch(ctx context.Context, candidateIDs ...string) {
	if len(candidateIDs) == 0 {
		return
	}
	requestID := RequestIDFromContext(ctx)
	local := candidateIDs
	if s.Queue != nil {
		local = nil
		for _, id := range candidateIDs {
			msg := queue.NewMessage(id, requestID, s.now())
			if err := s.Queue.Send(ctx, msg); err != nil {
				telemetry.Error("analysis.enqueue_failed", map[string]any{
					"request_id":   requestID,
					"candidate_id": id,
					"error":        err.Error(),
				})
				local = append(local, id)
			}
		}
		if len(local) == 0 {
			return
		}
	}
	go s.processAll(backgroundWithRequestID(ctx), local)
}

func (s *Service) processAll(ctx context.Context, ids []string) {
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency())
	for _, id := range ids {
		g.Go(func() error {
			s.processSafely(ctx, id)
			return nil
		})
	}
	_ = g.Wait()
}

// processSafely never panics; failures end up on the candidate row.
func (s *Service) processSafely(ctx context.Context, candidateID string) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, candidates.Candidate{ID: candidateID}, fmt.Errorf("panic: %v", r), time.Time{})
		}
	}()
	if err := s.ProcessCandidate(ctx, candidateID); err != nil {
		telemetry.Warn("analysis.background_failed", map[string]any{
			"request_id":   RequestIDFromContext(ctx),
			"candidate_id": candidateID,
			"error":        sanitizeError(err),
		})
	}
}

// ProcessCandidate analyzes a candidate that is still in the analyzing
// state. Candidates that already finished are skipped so redelivered
// queue messages are harmless.
func (s *Service) ProcessCandidate(ctx context.Context, candidateID string) error {
	c, err := s.Candidates.Get(ctx, candidateID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			telemetry.Warn("analysis.candidate_missing", map[string]any{
				"request_id":   RequestIDFromContext(ctx),
				"candidate_id": candidateID,
			})
			return nil
		}
		return err
	}
	if c.Status != candidates.StatusAnalyzing {
		telemetry.Info("analysis.skipped", map[string]any{
			"request_id":   RequestIDFromContext(ctx),
			"candidate_id": candidateID,
			"status":       c.Status,
		})
		return nil
	}
	job, err := s.Jobs.GetByID(ctx, c.JobID)
	if err != nil {
		s.fail(ctx, c, fmt.Errorf("job lookup: %w", err), time.Time{})
		return err
	}
	_, err = s.process(ctx, c, job)
	return err
}

func (s *Service) process(ctx context.Context, c candidates.Candidate, job jobs.Job) (Outcome, error) {
	startedAt := time.Now()
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        RequestIDFromContext(ctx),
		"job_id":            job.ID,
		"candidate_id":      c.ID,
		"status":            candidates.StatusAnalyzing,
		"status_transition": "submitted->analyzing",
	})

	res, err := s.Analyzer.AnalyzeResume(ctx, analyzer.Request{
		FileKey:         c.FilePath,
		FileName:        c.Filename,
		Position:        job.Position,
		RequiredYears:   job.RequiredYearsExperience,
		FlexibleOnTitle: job.FlexibleOnTitle,
		JobLocation:     job.Location,
	})
	if err != nil {
		return s.fail(ctx, c, err, startedAt), err
	}

	resultJSON, err := json.Marshal(res.Result)
	if err != nil {
		err = fmt.Errorf("encode result: %w", err)
		return s.fail(ctx, c, err, startedAt), err
	}
	now := s.now()
	record := Analysis{
		ID:                   uuid.NewString(),
		CandidateID:          c.ID,
		Position:             job.Position,
		OverallScore:         res.Result.OverallScore,
		ScoreOutOf10:         res.Result.ScoreOutOf10,
		HiringRecommendation: res.Result.HiringRecommendation,
		Result:               resultJSON,
		Provider:             res.Provider,
		Model:                res.Model,
		CreatedAt:            now,
	}
	entry := pipeline.NewEntry(pipeline.NewEntryInput{
		CandidateID:     c.ID,
		JobID:           job.ID,
		OverallScore:    res.Result.OverallScore,
		VehicleStatus:   scoring.ParseVehicleStatus(c.VehicleStatus),
		VehicleRequired: job.VehicleRequired,
		GiveThemAChance: res.Result.GiveThemAChance,
		Summary:         res.Result.Summary,
		Position:        job.Position,
	}, now)

	info := res.Result.CandidateInfo
	err = s.DB.InTx(ctx, func(tx *db.Tx) error {
		if err := (&SQLRepo{DB: tx}).Create(ctx, record); err != nil {
			return fmt.Errorf("insert analysis: %w", err)
		}
		if err := (&pipeline.SQLRepo{DB: tx}).Create(ctx, entry); err != nil {
			return fmt.Errorf("insert pipeline entry: %w", err)
		}
		cands := &candidates.SQLRepo{DB: tx}
		if err := cands.FillContact(ctx, c.ID, info.Name, info.Email, info.Phone); err != nil {
			return fmt.Errorf("fill contact: %w", err)
		}
		if err := cands.SetStatus(ctx, c.ID, candidates.StatusCompleted, ""); err != nil {
			return fmt.Errorf("complete candidate: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrAlreadyAnalyzed) {
		telemetry.Info("analysis.duplicate", map[string]any{
			"request_id":   RequestIDFromContext(ctx),
			"job_id":       job.ID,
			"candidate_id": c.ID,
		})
		return s.current(ctx, c), nil
	}
	if err != nil {
		return s.fail(ctx, c, err, startedAt), err
	}

	durationMs := metrics.SinceMs(startedAt)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        RequestIDFromContext(ctx),
		"job_id":            job.ID,
		"candidate_id":      c.ID,
		"pipeline_id":       entry.ID,
		"status":            candidates.StatusCompleted,
		"status_transition": "analyzing->completed",
		"overall_score":     record.OverallScore,
		"tier":              entry.Tier,
		"prompt_type":       res.PromptType.String(),
		"duration_ms":       durationMs,
	})

	c.Status = candidates.StatusCompleted
	if updated, err := s.Candidates.Get(ctx, c.ID); err == nil {
		c = updated
	}
	return Outcome{Candidate: c, Analysis: &record, Pipeline: &entry}, nil
}

// current returns the stored state of a candidate another run already
// finished, falling back to c when it cannot be read.
func (s *Service) current(ctx context.Context, c candidates.Candidate) Outcome {
	if stored, err := s.Candidates.Get(ctx, c.ID); err == nil {
		c = stored
	}
	out := Outcome{Candidate: c}
	if s.Analyses != nil {
		if a, err := s.Analyses.GetByCandidate(ctx, c.ID); err == nil {
			out.Analysis = &a
		}
	}
	return out
}

// fail records err on the candidate and returns the failed outcome. A
// candidate that already left the analyzing state keeps its status.
func (s *Service) fail(ctx context.Context, c candidates.Candidate, err error, startedAt time.Time) Outcome {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), failTimeout)
	defer cancel()
	changed, updateErr := s.Candidates.MarkFailed(ctx, c.ID, msg)
	if updateErr != nil {
		telemetry.Error("analysis.status_update_failed", map[string]any{
			"candidate_id": c.ID,
			"error":        updateErr.Error(),
		})
	} else if !changed {
		telemetry.Warn("analysis.failure_ignored", map[string]any{
			"request_id":   RequestIDFromContext(ctx),
			"candidate_id": c.ID,
			"error_code":   code,
		})
		return s.current(ctx, c)
	}
	metrics.IncAnalysisFailed()
	fields := map[string]any{
		"request_id":        RequestIDFromContext(ctx),
		"job_id":            c.JobID,
		"candidate_id":      c.ID,
		"status":            candidates.StatusError,
		"status_transition": "analyzing->error",
		"error_code":        code,
		"error":             msg,
	}
	if !startedAt.IsZero() {
		durationMs := metrics.SinceMs(startedAt)
		metrics.ObserveAnalysisDurationMs(durationMs)
		fields["duration_ms"] = durationMs
	}
	telemetry.Error("analysis.failed", fields)

	c.Status = candidates.StatusError
	c.ErrorMessage = msg
	return Outcome{Candidate: c}
}

// GetCandidate returns a candidate whose job employerID owns.
func (s *Service) GetCandidate(ctx context.Context, employerID, candidateID string) (candidates.Candidate, error) {
	c, err := s.Candidates.Get(ctx, candidateID)
	if err != nil {
		return candidates.Candidate{}, err
	}
	if _, err := s.Jobs.Get(ctx, employerID, c.JobID); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return candidates.Candidate{}, candidates.ErrNotFound
		}
		return candidates.Candidate{}, err
	}
	return c, nil
}

func (s *Service) ListCandidates(ctx context.Context, employerID, jobID string) ([]candidates.Candidate, error) {
	if _, err := s.Jobs.Get(ctx, employerID, jobID); err != nil {
		return nil, err
	}
	return s.Candidates.ListByJob(ctx, jobID)
}

func (s *Service) GetAnalysis(ctx context.Context, employerID, candidateID string) (Analysis, error) {
	if _, err := s.GetCandidate(ctx, employerID, candidateID); err != nil {
		return Analysis{}, err
	}
	return s.Analyses.GetByCandidate(ctx, candidateID)
}

// DeleteCandidate removes the candidate and any resume still in storage.
// Analyses and pipeline rows go with it through foreign keys.
func (s *Service) DeleteCandidate(ctx context.Context, employerID, candidateID string) error {
	c, err := s.GetCandidate(ctx, employerID, candidateID)
	if err != nil {
		return err
	}
	if err := s.Candidates.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.discard(ctx, c.FilePath)
	return nil
}

// Status reports a candidate's processing state for applicant polling.
func (s *Service) Status(ctx context.Context, candidateID string) (string, error) {
	c, err := s.Candidates.Get(ctx, candidateID)
	if err != nil {
		return "", err
	}
	return c.Status, nil
}

func (s *Service) discard(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, object.ErrNotFound) {
		telemetry.Warn("analysis.discard_failed", map[string]any{"file_key": key, "error": err.Error()})
	}
}

func (s *Service) concurrency() int {
	if s.BatchConcurrency > 0 {
		return s.BatchConcurrency
	}
	return defaultBatchConcurrency
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func classifyFailure(err error) string {
	var statusErr *llm.StatusError
	var netErr net.Error
	switch {
	case err == nil:
		return ErrorCodeInternal
	case errors.Is(err, extract.ErrUnsupportedFile), errors.Is(err, extract.ErrNoText):
		return ErrorCodeUnsupportedFile
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorCodeLLMTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorCodeLLMTimeout
	case errors.Is(err, analyzer.ErrParseResponse), errors.Is(err, analyzer.ErrInvalidResponse):
		return ErrorCodeLLMResponse
	case errors.As(err, &statusErr):
		return ErrorCodeLLMUpstream
	case errors.Is(err, object.ErrNotFound):
		return ErrorCodeStorage
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") {
		return ErrorCodeLLMTimeout
	}
	if strings.Contains(msg, "insert ") || strings.Contains(msg, "store resume") {
		return ErrorCodeStorage
	}
	return ErrorCodeInternal
}

// sanitizeError flattens err onto one line of at most 500 bytes, cut on a
// rune boundary.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut]
	}
	return msg
}
