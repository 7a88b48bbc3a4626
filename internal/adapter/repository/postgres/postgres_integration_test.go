package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and skips the test when unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db))
	return db
}

func TestReservationRepository_InsertIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewReservationRepository(db)
	ctx := context.Background()
	resourceID := "it-" + uuid.NewString()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	res := &domain.ConfirmedReservation{
		ResourceID:  resourceID,
		Start:       start,
		End:         start.AddDate(0, 0, 2),
		UnitsHeld:   1,
		ExternalRef: "order-1",
		CreatedAt:   time.Now().UTC(),
	}
	inserted, err := repo.Insert(ctx, res)
	require.NoError(t, err)
	assert.True(t, inserted)

	dup := *res
	dup.ID = uuid.Nil
	inserted, err = repo.Insert(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := repo.ListByResource(ctx, resourceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, start, list[0].Start)

	require.NoError(t, repo.ReplaceForResource(ctx, resourceID, nil))
	list, err = repo.ListByResource(ctx, resourceID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestHoldRepository_DeleteExpired(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewHoldRepository(db)
	ctx := context.Background()
	resourceID := "it-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)

	for token, expires := range map[string]time.Time{
		"dead-" + resourceID: now.Add(-time.Minute),
		"live-" + resourceID: now.Add(time.Minute),
	} {
		require.NoError(t, repo.Save(ctx, &domain.ProvisionalHold{
			Token:      token,
			ResourceID: resourceID,
			Start:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			End:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			UnitsHeld:  1,
			ExpiresAt:  expires,
			CreatedAt:  now,
		}))
	}

	n, err := repo.DeleteExpired(ctx, resourceID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	hold, err := repo.GetByToken(ctx, "live-"+resourceID)
	require.NoError(t, err)
	require.NotNil(t, hold)
	assert.True(t, hold.IsLive(now))

	removed, err := repo.Delete(ctx, "live-"+resourceID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestMarkerRepository_MarkTwice(t *testing.T) {
	db := openTestDB(t)
	repo := postgres.NewMarkerRepository(db)
	ctx := context.Background()
	ref := "it-" + uuid.NewString()

	voided, err := repo.IsVoided(ctx, ref)
	require.NoError(t, err)
	assert.False(t, voided)

	require.NoError(t, repo.MarkVoided(ctx, ref, time.Now()))
	require.NoError(t, repo.MarkVoided(ctx, ref, time.Now()))

	voided, err = repo.IsVoided(ctx, ref)
	require.NoError(t, err)
	assert.True(t, voided)
}
