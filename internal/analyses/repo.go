package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByCandidate(ctx context.Context, candidateID string) (Analysis, error)
}
