package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo stores pipeline entries in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Entry
	history map[string][]AuditEntry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Entry),
		history: make(map[string][]AuditEntry),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CandidateID == e.CandidateID && existing.JobID == e.JobID {
			return fmt.Errorf("pipeline entry exists for candidate %s", e.CandidateID)
		}
	}
	e.UpdatedAt = e.CreatedAt
	r.byID[e.ID] = e
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) GetMany(ctx context.Context, ids []string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string, f Filter) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Entry{}
	for _, e := range r.byID {
		if e.JobID != jobID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Tier != "" && e.Tier != f.Tier {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TierScore != out[j].TierScore {
			return out[i].TierScore > out[j].TierScore
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) ApplyChanges(ctx context.Context, changes []Change, changedBy string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range changes {
		e, ok := r.byID[ch.PipelineID]
		if !ok || e.Status != ch.From {
			return fmt.Errorf("%w: %s", ErrConflict, ch.PipelineID)
		}
	}
	for _, ch := range changes {
		e := r.byID[ch.PipelineID]
		e.Status = ch.To
		e.UpdatedAt = at
		r.byID[ch.PipelineID] = e
		r.history[ch.PipelineID] = append(r.history[ch.PipelineID], AuditEntry{
			ID:         uuid.NewString(),
			PipelineID: ch.PipelineID,
			From:       ch.From,
			To:         ch.To,
			ChangedBy:  changedBy,
			CreatedAt:  at,
		})
	}
	return nil
}

func (r *MemoryRepo) SetNotes(ctx context.Context, id, notes string, at time.Time) error {
	return r.update(ctx, id, func(e *Entry) {
		e.Notes = notes
		e.UpdatedAt = at
	})
}

func (r *MemoryRepo) SetChance(ctx context.Context, id string, chance bool, at time.Time) error {
	return r.update(ctx, id, func(e *Entry) {
		e.GiveThemAChance = chance
		e.UpdatedAt = at
	})
}

func (r *MemoryRepo) MarkContacted(ctx context.Context, id, via string, at time.Time) error {
	return r.update(ctx, id, func(e *Entry) {
		e.ContactedVia = via
		t := at
		e.ContactedAt = &t
		e.UpdatedAt = at
	})
}

func (r *MemoryRepo) History(ctx context.Context, id string) ([]AuditEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]AuditEntry, len(r.history[id]))
	copy(out, r.history[id])
	return out, nil
}

func (r *MemoryRepo) update(ctx context.Context, id string, fn func(*Entry)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	fn(&e)
	r.byID[id] = e
	return nil
}
