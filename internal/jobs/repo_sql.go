package jobs

import (
	"context"
	"database/sql"
	"errors"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite.
type SQLRepo struct {
	DB db.Execer
}

const jobColumns = `id, employer_id, title, position, description, location,
  required_years_experience, flexible_on_title, vehicle_required, status, created_at, updated_at`

func (r *SQLRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (` + jobColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.EmployerID,
		job.Title,
		job.Position,
		job.Description,
		job.Location,
		job.RequiredYearsExperience,
		job.FlexibleOnTitle,
		job.VehicleRequired,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

func (r *SQLRepo) Get(ctx context.Context, jobID string) (Job, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	return scanJob(row)
}

func (r *SQLRepo) GetForEmployer(ctx context.Context, employerID, jobID string) (Job, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND employer_id = $2`, jobID, employerID)
	return scanJob(row)
}

func (r *SQLRepo) ListByEmployer(ctx context.Context, employerID string) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE employer_id = $1 ORDER BY created_at DESC`, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func (r *SQLRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
  title = $3,
  position = $4,
  description = $5,
  location = $6,
  required_years_experience = $7,
  flexible_on_title = $8,
  vehicle_required = $9,
  status = $10,
  updated_at = $11
WHERE id = $1 AND employer_id = $2`
	res, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.EmployerID,
		job.Title,
		job.Position,
		job.Description,
		job.Location,
		job.RequiredYearsExperience,
		job.FlexibleOnTitle,
		job.VehicleRequired,
		job.Status,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLRepo) Delete(ctx context.Context, employerID, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, jobID, employerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Position,
		&job.Description,
		&job.Location,
		&job.RequiredYearsExperience,
		&job.FlexibleOnTitle,
		&job.VehicleRequired,
		&job.Status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return job, err
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
