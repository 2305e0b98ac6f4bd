package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisdao "staffing-server/dao/redis"
	"staffing-server/db"
	apperrors "staffing-server/errors"
	"staffing-server/models"
	"staffing-server/progress"
)

func newSyncFixture(t *testing.T) (*TrafficSyncService, *stubFootfallAPI, *redisdao.RedisStoreDAO) {
	t.Helper()
	mockClient := db.NewMockRedisClient(context.Background())
	storeDao := redisdao.NewRedisStoreDAO(mockClient)
	require.NoError(t, storeDao.UpsertStore(models.Store{
		StoreID:   "store-centro",
		OpenTime:  "09:00",
		CloseTime: "21:00",
	}))
	stub := newStubFootfallAPI()
	return NewTrafficSyncService(storeDao, stub, progress.NewMemoryStore()), stub, storeDao
}

func syncDate(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestTrafficSyncService_SyncStore_Completed(t *testing.T) {
	svc, stub, storeDao := newSyncFixture(t)
	stub.days["2025-02-10"] = map[string]int{"10:00": 40}
	stub.days["2025-02-11"] = map[string]int{"10:00": 60}

	result, err := svc.SyncStore(context.Background(), "session-1", "store-centro",
		syncDate("2025-02-10"), syncDate("2025-02-11"))
	require.NoError(t, err)

	assert.Equal(t, 2, result.DaysSynced)
	assert.Equal(t, 0, result.DaysSkipped)
	assert.False(t, result.InBackground)

	day, err := storeDao.GetTrafficDay("store-centro", "2025-02-10")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 40, day.Entries["10:00"])
}

func TestTrafficSyncService_SyncStore_SkipsFailedDays(t *testing.T) {
	svc, stub, storeDao := newSyncFixture(t)
	stub.days["2025-02-10"] = map[string]int{"10:00": 40}
	stub.failDates["2025-02-11"] = true

	result, err := svc.SyncStore(context.Background(), "session-1", "store-centro",
		syncDate("2025-02-10"), syncDate("2025-02-11"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.DaysSynced)
	assert.Equal(t, 1, result.DaysSkipped)

	// The failed day is never cached, not even as zeros.
	day, err := storeDao.GetTrafficDay("store-centro", "2025-02-11")
	require.NoError(t, err)
	assert.Nil(t, day)
}

func TestTrafficSyncService_SyncStore_NotFound(t *testing.T) {
	svc, _, _ := newSyncFixture(t)

	_, err := svc.SyncStore(context.Background(), "session-1", "missing-store",
		syncDate("2025-02-10"), syncDate("2025-02-11"))

	assert.ErrorIs(t, err, apperrors.ErrStoreNotFound)
}

func TestTrafficSyncService_SyncStore_ExceedsBudgetContinuesInBackground(t *testing.T) {
	svc, stub, storeDao := newSyncFixture(t)
	svc.runBudget = 10 * time.Millisecond

	release := make(chan struct{})
	stub.block = release
	stub.days["2025-02-10"] = map[string]int{"10:00": 40}

	result, err := svc.SyncStore(context.Background(), "session-1", "store-centro",
		syncDate("2025-02-10"), syncDate("2025-02-10"))
	require.NoError(t, err)

	assert.True(t, result.InBackground)
	assert.Equal(t, "store-centro", result.StoreID)
	assert.Equal(t, "2025-02-10", result.From)

	// Let the background run finish and verify it still populated the cache.
	close(release)
	require.Eventually(t, func() bool {
		day, err := storeDao.GetTrafficDay("store-centro", "2025-02-10")
		return err == nil && day != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTrafficSyncService_WarmCache(t *testing.T) {
	svc, _, storeDao := newSyncFixture(t)
	require.NoError(t, storeDao.UpsertStore(models.Store{StoreID: "store-olinda"}))

	err := svc.WarmCache(context.Background())
	require.NoError(t, err)

	// Both stores had yesterday fetched and cached.
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	for _, storeID := range []string{"store-centro", "store-olinda"} {
		day, err := storeDao.GetTrafficDay(storeID, yesterday)
		require.NoError(t, err)
		assert.NotNil(t, day, "store %s", storeID)
	}
}
