package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite. DB may be a *db.Handle
// or a *db.Tx; multi-statement writes open their own transaction only on a
// handle.
type SQLRepo struct {
	DB db.Execer
}

const entryColumns = `p.id, p.candidate_id, p.job_id, p.pipeline_status, p.tier, p.tier_score, p.star_rating,
  p.give_them_a_chance, p.vehicle_status, p.ai_summary, p.contacted_via, p.contacted_at,
  p.evaluated_position, p.notes, p.created_at, p.updated_at,
  c.applicant_name, c.applicant_email, c.applicant_phone`

const entryFrom = ` FROM candidate_pipeline p JOIN candidates c ON c.id = p.candidate_id`

func (r *SQLRepo) Create(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO candidate_pipeline (id, candidate_id, job_id, pipeline_status, tier, tier_score, star_rating,
  give_them_a_chance, vehicle_status, ai_summary, evaluated_position, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.CandidateID,
		e.JobID,
		string(e.Status),
		e.Tier,
		e.TierScore,
		e.StarRating,
		e.GiveThemAChance,
		e.VehicleStatus,
		e.AISummary,
		e.EvaluatedPosition,
		e.Notes,
		e.CreatedAt,
	)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Entry, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+entryColumns+entryFrom+` WHERE p.id = $1`, id)
	return scanEntry(row)
}

func (r *SQLRepo) GetMany(ctx context.Context, ids []string) ([]Entry, error) {
	if len(ids) == 0 {
		return []Entry{}, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+entryColumns+entryFrom+` WHERE p.id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *SQLRepo) ListByJob(ctx context.Context, jobID string, f Filter) ([]Entry, error) {
	query := `SELECT ` + entryColumns + entryFrom + ` WHERE p.job_id = $1`
	args := []any{jobID}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND p.pipeline_status = $%d", len(args))
	}
	if f.Tier != "" {
		args = append(args, f.Tier)
		query += fmt.Sprintf(" AND p.tier = $%d", len(args))
	}
	query += ` ORDER BY p.tier_score DESC, p.created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *SQLRepo) ApplyChanges(ctx context.Context, changes []Change, changedBy string, at time.Time) error {
	return r.inTx(ctx, func(tx db.Execer) error {
		for _, ch := range changes {
			res, err := tx.ExecContext(ctx,
				`UPDATE candidate_pipeline SET pipeline_status = $3, updated_at = $4 WHERE id = $1 AND pipeline_status = $2`,
				ch.PipelineID, string(ch.From), string(ch.To), at)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", ErrConflict, ch.PipelineID)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO pipeline_audit_log (id, pipeline_id, from_status, to_status, changed_by, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.NewString(), ch.PipelineID, string(ch.From), string(ch.To), changedBy, at); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLRepo) SetNotes(ctx context.Context, id, notes string, at time.Time) error {
	return r.exec(ctx, `UPDATE candidate_pipeline SET notes = $2, updated_at = $3 WHERE id = $1`, id, notes, at)
}

func (r *SQLRepo) SetChance(ctx context.Context, id string, chance bool, at time.Time) error {
	return r.exec(ctx, `UPDATE candidate_pipeline SET give_them_a_chance = $2, updated_at = $3 WHERE id = $1`, id, chance, at)
}

func (r *SQLRepo) MarkContacted(ctx context.Context, id, via string, at time.Time) error {
	return r.exec(ctx, `UPDATE candidate_pipeline SET contacted_via = $2, contacted_at = $3, updated_at = $3 WHERE id = $1`, id, via, at)
}

func (r *SQLRepo) History(ctx context.Context, id string) ([]AuditEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, pipeline_id, from_status, to_status, changed_by, created_at
FROM pipeline_audit_log WHERE pipeline_id = $1 ORDER BY created_at ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AuditEntry{}
	for rows.Next() {
		var a AuditEntry
		var from, to string
		if err := rows.Scan(&a.ID, &a.PipelineID, &from, &to, &a.ChangedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.From, a.To = Status(from), Status(to)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepo) inTx(ctx context.Context, fn func(db.Execer) error) error {
	if h, ok := r.DB.(*db.Handle); ok {
		return h.InTx(ctx, func(tx *db.Tx) error { return fn(tx) })
	}
	return fn(r.DB)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	var status string
	var contactedVia sql.NullString
	var contactedAt sql.NullTime
	err := row.Scan(
		&e.ID,
		&e.CandidateID,
		&e.JobID,
		&status,
		&e.Tier,
		&e.TierScore,
		&e.StarRating,
		&e.GiveThemAChance,
		&e.VehicleStatus,
		&e.AISummary,
		&contactedVia,
		&contactedAt,
		&e.EvaluatedPosition,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.CandidateName,
		&e.CandidateEmail,
		&e.CandidatePhone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	e.Status = Status(status)
	e.ContactedVia = contactedVia.String
	if contactedAt.Valid {
		t := contactedAt.Time
		e.ContactedAt = &t
	}
	return e, nil
}

func collect(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
