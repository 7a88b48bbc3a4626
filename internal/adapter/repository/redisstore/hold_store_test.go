package redisstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/srgjo27/cowork_booking/internal/adapter/repository/redisstore"
	"github.com/srgjo27/cowork_booking/internal/core/domain"
	"github.com/srgjo27/cowork_booking/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleHold(token string, expiresAt time.Time) *domain.ProvisionalHold {
	return &domain.ProvisionalHold{
		Token:      token,
		ResourceID: "desk-1",
		Start:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		UnitsHeld:  1,
		ExpiresAt:  expiresAt,
		CreatedAt:  now,
	}
}

func encode(t *testing.T, h *domain.ProvisionalHold) []byte {
	t.Helper()
	body, err := json.Marshal(h)
	require.NoError(t, err)
	return body
}

func TestHoldStore_SaveUsesNativeTTL(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := redisstore.NewHoldStore(db, clock.NewFake(now))
	ctx := context.Background()
	hold := sampleHold("tok-1", now.Add(5*time.Minute))

	mockRedis.ExpectSet("hold:tok-1", encode(t, hold), 5*time.Minute).SetVal("OK")
	mockRedis.ExpectSAdd("holds:desk-1", "tok-1").SetVal(1)
	mockRedis.ExpectSAdd("holds:resources", "desk-1").SetVal(1)

	require.NoError(t, store.Save(ctx, hold))

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestHoldStore_GetByToken_Missing(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := redisstore.NewHoldStore(db, clock.NewFake(now))

	mockRedis.ExpectGet("hold:gone").RedisNil()

	hold, err := store.GetByToken(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, hold)
}

func TestHoldStore_ListPrunesExpiredKeys(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := redisstore.NewHoldStore(db, clock.NewFake(now))
	live := sampleHold("a", now.Add(time.Minute))

	mockRedis.ExpectSMembers("holds:desk-1").SetVal([]string{"a", "b"})
	mockRedis.ExpectMGet("hold:a", "hold:b").SetVal([]interface{}{string(encode(t, live)), nil})
	mockRedis.ExpectSRem("holds:desk-1", "b").SetVal(1)

	holds, err := store.ListByResource(context.Background(), "desk-1")
	require.NoError(t, err)
	require.Len(t, holds, 1)
	assert.Equal(t, "a", holds[0].Token)
	assert.True(t, holds[0].ExpiresAt.Equal(live.ExpiresAt))

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestHoldStore_Delete(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := redisstore.NewHoldStore(db, clock.NewFake(now))
	ctx := context.Background()

	mockRedis.ExpectGetDel("hold:a").SetVal(string(encode(t, sampleHold("a", now.Add(time.Minute)))))
	mockRedis.ExpectSRem("holds:desk-1", "a").SetVal(1)
	mockRedis.ExpectGetDel("hold:a").RedisNil()

	removed, err := store.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, removed)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestHoldStore_DeleteExpiredAheadOfRedis(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	store := redisstore.NewHoldStore(db, clock.NewFake(now))
	dead := sampleHold("dead", now)
	body := string(encode(t, dead))

	mockRedis.ExpectSMembers("holds:desk-1").SetVal([]string{"dead"})
	mockRedis.ExpectMGet("hold:dead").SetVal([]interface{}{body})
	mockRedis.ExpectGetDel("hold:dead").SetVal(body)
	mockRedis.ExpectSRem("holds:desk-1", "dead").SetVal(1)

	n, err := store.DeleteExpired(context.Background(), "desk-1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
