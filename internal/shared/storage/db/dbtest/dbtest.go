// Package dbtest opens migrated SQLite databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"hvac-ats-backend/internal/shared/storage/db"
)

// NewSQLite returns a handle on a fresh, migrated database file that is
// closed when the test ends.
func NewSQLite(t testing.TB) *db.Handle {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Connect(ctx, db.DialectSQLite, path, db.DefaultSQLiteOptions())
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.RunMigrations(ctx, conn, db.DialectSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db.NewHandle(conn, db.DialectSQLite)
}

// SeedUser inserts an employer row and returns its id.
func SeedUser(t testing.TB, h *db.Handle, email string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := h.ExecContext(context.Background(),
		`INSERT INTO users (id, email, name, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
		id, email, "Owner", now)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// SeedJob inserts an open job for employerID and returns its id.
func SeedJob(t testing.TB, h *db.Handle, employerID, position string, requiredYears float64, vehicleRequired bool) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := h.ExecContext(context.Background(), `
INSERT INTO jobs (id, employer_id, title, position, description, location,
  required_years_experience, flexible_on_title, vehicle_required, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, '', '', $5, $6, $7, 'open', $8, $8)`,
		id, employerID, position, position, requiredYears, true, vehicleRequired, now)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return id
}

// SeedCandidate inserts a candidate in the analyzing state and returns its id.
func SeedCandidate(t testing.TB, h *db.Handle, jobID, email string) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := h.ExecContext(context.Background(), `
INSERT INTO candidates (id, job_id, filename, file_path, status, applicant_name, applicant_email,
  vehicle_status, source, created_at, updated_at)
VALUES ($1, $2, 'resume.pdf', 'k/resume.pdf', 'analyzing', 'Sam Applicant', $3, 'unknown', 'upload', $4, $4)`,
		id, jobID, email, now)
	if err != nil {
		t.Fatalf("seed candidate: %v", err)
	}
	return id
}
