package analyses

import (
	"context"
	"database/sql"
	"errors"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite. DB may be a transaction.
type SQLRepo struct {
	DB db.Execer
}

func (r *SQLRepo) Create(ctx context.Context, a Analysis) error {
	const query = `
INSERT INTO analyses (id, candidate_id, position, overall_score, score_out_of_10,
  hiring_recommendation, result, provider, model, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.CandidateID,
		a.Position,
		a.OverallScore,
		a.ScoreOutOf10,
		a.HiringRecommendation,
		string(a.Result),
		a.Provider,
		a.Model,
		a.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return ErrAlreadyAnalyzed
	}
	return err
}

func (r *SQLRepo) GetByCandidate(ctx context.Context, candidateID string) (Analysis, error) {
	const query = `
SELECT id, candidate_id, position, overall_score, score_out_of_10,
  hiring_recommendation, result, provider, model, created_at
FROM analyses WHERE candidate_id = $1`
	var a Analysis
	var result []byte
	err := r.DB.QueryRowContext(ctx, query, candidateID).Scan(
		&a.ID,
		&a.CandidateID,
		&a.Position,
		&a.OverallScore,
		&a.ScoreOutOf10,
		&a.HiringRecommendation,
		&result,
		&a.Provider,
		&a.Model,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	if err != nil {
		return Analysis{}, err
	}
	a.Result = result
	return a, nil
}
