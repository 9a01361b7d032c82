package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/shared/storage/db"
	"hvac-ats-backend/internal/shared/storage/db/dbtest"
)

func TestSQLRepoCreateLowercasesEmail(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	repo := &SQLRepo{DB: db.NewHandle(conn, db.DialectPostgres)}
	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO users").
		WithArgs("u-1", "owner@example.com", "Owner", "hash", nil, nil, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(context.Background(), User{ID: "u-1", Email: "Owner@Example.com", Name: "Owner", PasswordHash: "hash", CreatedAt: now})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestSQLRepoSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := &SQLRepo{DB: dbtest.NewSQLite(t)}
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, User{ID: "u-1", Email: "owner@example.com", Name: "Owner", PasswordHash: "h", CreatedAt: now}))
	assert.ErrorIs(t, repo.Create(ctx, User{ID: "u-2", Email: "OWNER@example.com", CreatedAt: now}), ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "Owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "h", got.PasswordHash)
	assert.False(t, got.GmailConnected())

	linked, err := repo.UpsertGoogle(ctx, User{ID: "ignored", Email: "owner@example.com", Name: "Other", GoogleSub: "g-1", GoogleRefreshToken: "r-1"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", linked.ID)
	assert.Equal(t, "Owner", linked.Name)
	assert.True(t, linked.GmailConnected())

	// A later sign-in without a new refresh token keeps the stored one.
	again, err := repo.UpsertGoogle(ctx, User{ID: "ignored", Email: "owner@example.com", GoogleSub: "g-1"})
	require.NoError(t, err)
	assert.Equal(t, "r-1", again.GoogleRefreshToken)

	created, err := repo.UpsertGoogle(ctx, User{ID: "u-3", Email: "new@example.com", Name: "New", GoogleSub: "g-3"})
	require.NoError(t, err)
	assert.Equal(t, "u-3", created.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
