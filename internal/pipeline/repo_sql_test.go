package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvac-ats-backend/internal/scoring"
	"hvac-ats-backend/internal/shared/storage/db"
	"hvac-ats-backend/internal/shared/storage/db/dbtest"
)

type sqlFixture struct {
	h     *db.Handle
	repo  *SQLRepo
	owner string
	jobID string
}

func newSQLFixture(t *testing.T) sqlFixture {
	t.Helper()
	h := dbtest.NewSQLite(t)
	owner := dbtest.SeedUser(t, h, "owner@example.com")
	return sqlFixture{
		h:     h,
		repo:  &SQLRepo{DB: h},
		owner: owner,
		jobID: dbtest.SeedJob(t, h, owner, "HVAC Service Technician", 5, true),
	}
}

func (f sqlFixture) addEntry(t *testing.T, email string, score int) Entry {
	t.Helper()
	candidateID := dbtest.SeedCandidate(t, f.h, f.jobID, email)
	e := NewEntry(NewEntryInput{
		CandidateID:     candidateID,
		JobID:           f.jobID,
		OverallScore:    score,
		VehicleStatus:   scoring.VehicleUnknown,
		VehicleRequired: true,
		Summary:         "summary",
		Position:        "HVAC Service Technician",
	}, time.Now().UTC())
	require.NoError(t, f.repo.Create(context.Background(), e))
	return e
}

func TestSQLRepoListAndTransitions(t *testing.T) {
	f := newSQLFixture(t)
	ctx := context.Background()
	low := f.addEntry(t, "low@example.com", 45)
	high := f.addEntry(t, "high@example.com", 91)

	list, err := f.repo.ListByJob(ctx, f.jobID, Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, high.ID, list[0].ID)
	assert.Equal(t, "high@example.com", list[0].CandidateEmail)

	red, err := f.repo.ListByJob(ctx, f.jobID, Filter{Tier: "red", Status: StatusNew})
	require.NoError(t, err)
	require.Len(t, red, 1)
	assert.Equal(t, low.ID, red[0].ID)

	at := time.Now().UTC()
	require.NoError(t, f.repo.ApplyChanges(ctx, []Change{{PipelineID: high.ID, From: StatusNew, To: StatusApproved}}, f.owner, at))

	// Second change carries a stale From; the first must roll back with it.
	err = f.repo.ApplyChanges(ctx, []Change{
		{PipelineID: low.ID, From: StatusNew, To: StatusBackup},
		{PipelineID: high.ID, From: StatusNew, To: StatusBackup},
	}, f.owner, at)
	require.ErrorIs(t, err, ErrConflict)

	got, err := f.repo.Get(ctx, low.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNew, got.Status)

	history, err := f.repo.History(ctx, high.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, StatusApproved, history[0].To)

	many, err := f.repo.GetMany(ctx, []string{low.ID, high.ID})
	require.NoError(t, err)
	assert.Len(t, many, 2)
}

func TestSQLRepoFieldUpdates(t *testing.T) {
	f := newSQLFixture(t)
	ctx := context.Background()
	e := f.addEntry(t, "x@example.com", 70)
	at := time.Now().UTC()

	require.NoError(t, f.repo.SetNotes(ctx, e.ID, "called twice", at))
	require.NoError(t, f.repo.SetChance(ctx, e.ID, true, at))
	require.NoError(t, f.repo.MarkContacted(ctx, e.ID, ContactChannelEmail, at))

	got, err := f.repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "called twice", got.Notes)
	assert.True(t, got.GiveThemAChance)
	assert.Equal(t, ContactChannelEmail, got.ContactedVia)
	require.NotNil(t, got.ContactedAt)

	assert.ErrorIs(t, f.repo.SetNotes(ctx, "missing", "x", at), ErrNotFound)
	_, err = f.repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLRepoRejectsDuplicateCandidate(t *testing.T) {
	f := newSQLFixture(t)
	e := f.addEntry(t, "dup@example.com", 70)
	dup := e
	dup.ID = "22222222-2222-2222-2222-222222222222"
	assert.Error(t, f.repo.Create(context.Background(), dup))
}
