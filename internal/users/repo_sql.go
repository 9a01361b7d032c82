package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"hvac-ats-backend/internal/shared/storage/db"
)

// SQLRepo implements Repo over Postgres or SQLite.
type SQLRepo struct {
	DB db.Execer
}

const userColumns = `id, email, name, password_hash, google_sub, google_refresh_token, created_at, updated_at`

func (r *SQLRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.Name,
		nullableString(user.PasswordHash),
		nullableString(user.GoogleSub),
		nullableString(user.GoogleRefreshToken),
		user.CreatedAt,
	)
	if db.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *SQLRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

func (r *SQLRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
}

func (r *SQLRepo) UpsertGoogle(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, NULL, $4, $5, $6, $6)
ON CONFLICT (email) DO UPDATE SET
  name = CASE WHEN users.name = '' THEN excluded.name ELSE users.name END,
  google_sub = excluded.google_sub,
  google_refresh_token = COALESCE(excluded.google_refresh_token, users.google_refresh_token),
  updated_at = excluded.updated_at`
	now := time.Now().UTC()
	email := strings.ToLower(user.Email)
	if _, err := r.DB.ExecContext(ctx, query,
		user.ID,
		email,
		user.Name,
		nullableString(user.GoogleSub),
		nullableString(user.GoogleRefreshToken),
		now,
	); err != nil {
		return User{}, err
	}
	return r.GetByEmail(ctx, email)
}

func (r *SQLRepo) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	var passwordHash, googleSub, refreshToken sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&passwordHash,
		&googleSub,
		&refreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.PasswordHash = passwordHash.String
	user.GoogleSub = googleSub.String
	user.GoogleRefreshToken = refreshToken.String
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
