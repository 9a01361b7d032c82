package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hvac-ats-backend/internal/scoring"
	"hvac-ats-backend/internal/shared/metrics"
	"hvac-ats-backend/internal/shared/telemetry"
)

// ContactChannelEmail is stored in contacted_via after an email is sent.
const ContactChannelEmail = "email"

// MaxBulkIDs caps a bulk status request.
const MaxBulkIDs = 200

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: func() time.Time { return time.Now().UTC() }}
}

// NewEntryInput is the analysis outcome a pipeline entry is built from.
type NewEntryInput struct {
	CandidateID     string
	JobID           string
	OverallScore    int
	VehicleStatus   scoring.VehicleStatus
	VehicleRequired bool
	GiveThemAChance bool
	Summary         string
	Position        string
}

// NewEntry derives tier, star rating and tier score from the vehicle
// adjusted score. The entry starts in StatusNew.
func NewEntry(in NewEntryInput, now time.Time) Entry {
	adjusted := scoring.AdjustScoreForVehicle(float64(in.OverallScore), in.VehicleStatus, in.VehicleRequired)
	return Entry{
		ID:                uuid.NewString(),
		CandidateID:       in.CandidateID,
		JobID:             in.JobID,
		Status:            StatusNew,
		Tier:              string(scoring.CalculateTier(adjusted)),
		TierScore:         adjusted,
		StarRating:        scoring.CalculateStarRating(adjusted),
		GiveThemAChance:   in.GiveThemAChance,
		VehicleStatus:     string(in.VehicleStatus),
		AISummary:         in.Summary,
		EvaluatedPosition: in.Position,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) GetMany(ctx context.Context, ids []string) ([]Entry, error) {
	return s.Repo.GetMany(ctx, dedupe(ids))
}

// ListByJob returns a job's entries ordered by tier score, highest first.
func (s *Service) ListByJob(ctx context.Context, jobID string, f Filter) ([]Entry, error) {
	return s.Repo.ListByJob(ctx, jobID, f)
}

// UpdateStatus moves one entry. A forbidden move returns *TransitionError.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status, changedBy string) (Entry, error) {
	entry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if err := ValidateTransition(entry.Status, to); err != nil {
		metrics.IncPipelineTransitionRejected()
		return Entry{}, err
	}
	if err := s.apply(ctx, []Change{{PipelineID: id, From: entry.Status, To: to}}, changedBy); err != nil {
		return Entry{}, err
	}
	return s.Repo.Get(ctx, id)
}

// BulkUpdateStatus validates every id before writing anything. One missing
// id or forbidden move rejects the whole batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, ids []string, to Status, changedBy string) ([]Entry, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids are required", ErrInvalidInput)
	}
	if len(ids) > MaxBulkIDs {
		return nil, fmt.Errorf("%w: at most %d ids per request", ErrInvalidInput, MaxBulkIDs)
	}
	entries, err := s.Repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	changes := make([]Change, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err := ValidateTransition(e.Status, to); err != nil {
			metrics.IncPipelineTransitionRejected()
			return nil, err
		}
		changes = append(changes, Change{PipelineID: id, From: e.Status, To: to})
	}
	if err := s.apply(ctx, changes, changedBy); err != nil {
		return nil, err
	}
	return s.Repo.GetMany(ctx, ids)
}

func (s *Service) SetNotes(ctx context.Context, id, notes string) (Entry, error) {
	if err := s.Repo.SetNotes(ctx, id, notes, s.now()); err != nil {
		return Entry{}, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *Service) SetChance(ctx context.Context, id string, chance bool) (Entry, error) {
	if err := s.Repo.SetChance(ctx, id, chance, s.now()); err != nil {
		return Entry{}, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *Service) History(ctx context.Context, id string) ([]AuditEntry, error) {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.History(ctx, id)
}

// MarkContacted stamps the contact channel and moves the entry to
// StatusContacted when the current state allows it. Other states are left
// as they are.
func (s *Service) MarkContacted(ctx context.Context, id, via, changedBy string) (Entry, error) {
	if err := s.Repo.MarkContacted(ctx, id, via, s.now()); err != nil {
		return Entry{}, err
	}
	entry, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if !CanTransition(entry.Status, StatusContacted) {
		return entry, nil
	}
	if err := s.apply(ctx, []Change{{PipelineID: id, From: entry.Status, To: StatusContacted}}, changedBy); err != nil {
		return Entry{}, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *Service) apply(ctx context.Context, changes []Change, changedBy string) error {
	if err := s.Repo.ApplyChanges(ctx, changes, changedBy, s.now()); err != nil {
		return err
	}
	for _, ch := range changes {
		metrics.IncPipelineTransition()
		telemetry.Info("pipeline.transition", map[string]any{
			"pipeline_id":       ch.PipelineID,
			"status_transition": string(ch.From) + "->" + string(ch.To),
			"changed_by":        changedBy,
		})
	}
	return nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
