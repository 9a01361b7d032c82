package candidates

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite. DB may be a transaction.
type SQLRepo struct {
	DB db.Execer
}

const candidateColumns = `id, job_id, batch_id, filename, file_path, status, applicant_name,
  applicant_email, applicant_phone, vehicle_status, source, error_message, created_at, updated_at`

func (r *SQLRepo) Create(ctx context.Context, c Candidate) error {
	const query = `
INSERT INTO candidates (` + candidateColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.JobID,
		nullable(c.BatchID),
		c.Filename,
		c.FilePath,
		c.Status,
		c.ApplicantName,
		c.ApplicantEmail,
		c.ApplicantPhone,
		c.VehicleStatus,
		c.Source,
		nullable(c.ErrorMessage),
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, id string) (Candidate, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidate(row)
}

func (r *SQLRepo) ListByJob(ctx context.Context, jobID string) ([]Candidate, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE job_id = $1 ORDER BY created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLRepo) SetStatus(ctx context.Context, id, status, errMessage string) error {
	var msg any
	if status == StatusError {
		msg = nullable(errMessage)
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE candidates SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1`,
		id, status, msg, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLRepo) MarkFailed(ctx context.Context, id, errMessage string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE candidates SET status = $2, error_message = $3, updated_at = $4 WHERE id = $1 AND status = $5`,
		id, StatusError, nullable(errMessage), time.Now().UTC(), StatusAnalyzing)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLRepo) FillContact(ctx context.Context, id, name, email, phone string) error {
	const query = `
UPDATE candidates SET
  applicant_name = CASE WHEN applicant_name = '' THEN $2 ELSE applicant_name END,
  applicant_email = CASE WHEN applicant_email = '' THEN $3 ELSE applicant_email END,
  applicant_phone = CASE WHEN applicant_phone = '' THEN $4 ELSE applicant_phone END,
  updated_at = $5
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, name, email, phone, time.Now().UTC())
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (Candidate, error) {
	var c Candidate
	var batchID, errMessage sql.NullString
	err := row.Scan(
		&c.ID,
		&c.JobID,
		&batchID,
		&c.Filename,
		&c.FilePath,
		&c.Status,
		&c.ApplicantName,
		&c.ApplicantEmail,
		&c.ApplicantPhone,
		&c.VehicleStatus,
		&c.Source,
		&errMessage,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Candidate{}, ErrNotFound
	}
	if err != nil {
		return Candidate{}, err
	}
	c.BatchID = batchID.String
	c.ErrorMessage = errMessage.String
	return c, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
