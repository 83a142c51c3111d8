package donations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/storage/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file:donationcache?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func TestReplaceAll_OverwritesPreviousHistory(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	first := []models.Donation{
		{ID: "d1", UserID: "u1", Amount: 500, Tier: models.TierBronze, DonationType: models.DonationOneTime},
		{ID: "d2", UserID: "u1", Amount: 5000, Tier: models.TierGold, DonationType: models.DonationRecurring, RecurringFrequency: "monthly"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, repo.ReplaceAll(ctx, first[:1]))

	got, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)
}

func TestGetAll_RoundTripsFields(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	in := []models.Donation{{
		ID:           "d1",
		UserID:       "u1",
		CowID:        "c1",
		Amount:       1500,
		Tier:         models.TierSilver,
		DonationType: models.DonationRecurring,
		CreatedAt:    created,
	}}
	require.NoError(t, repo.ReplaceAll(ctx, in))

	got, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "c1", d.CowID)
	assert.Equal(t, models.TierSilver, d.Tier)
	assert.Equal(t, models.DonationRecurring, d.DonationType)
	assert.True(t, created.Equal(d.CreatedAt))
}
