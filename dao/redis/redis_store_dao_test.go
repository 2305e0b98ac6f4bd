package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"staffing-server/db"
	apperrors "staffing-server/errors"
	"staffing-server/models"
)

func TestRedisStoreDAO_UpsertStore_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	testStore := models.Store{
		StoreID:          "store-centro",
		StoreName:        "Centro",
		DesiredAttention: 25,
		GrowthFactor:     0.1,
		OpenTime:         "09:00",
		CloseTime:        "21:00",
	}

	// Act
	err := dao.UpsertStore(testStore)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	expectedKey := "store_v1:store-centro"
	storedValue, err := mockClient.Get(expectedKey)
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var storedStore models.Store
	if err := json.Unmarshal([]byte(storedValue), &storedStore); err != nil {
		t.Fatalf("Failed to unmarshal stored store data: %v", err)
	}

	if storedStore.StoreID != testStore.StoreID {
		t.Errorf("Expected StoreID %s, got %s", testStore.StoreID, storedStore.StoreID)
	}
	if storedStore.DesiredAttention != testStore.DesiredAttention {
		t.Errorf("Expected DesiredAttention %v, got %v", testStore.DesiredAttention, storedStore.DesiredAttention)
	}
}

func TestRedisStoreDAO_GetStore_NotFound(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	// Act
	store, err := dao.GetStore("missing-store")

	// Assert
	if store != nil {
		t.Errorf("Expected nil store, got %v", store)
	}
	if !errors.Is(err, apperrors.ErrStoreNotFound) {
		t.Errorf("Expected ErrStoreNotFound, got %v", err)
	}
}

func TestRedisStoreDAO_GetStore_RoundTrip(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	testStore := models.Store{
		StoreID:      "store-olinda",
		OpenTime:     "08:00",
		CloseTime:    "20:00",
		MinimumStaff: map[string]int{"08:00": 1},
	}
	if err := dao.UpsertStore(testStore); err != nil {
		t.Fatalf("UpsertStore failed: %v", err)
	}

	// Act
	got, err := dao.GetStore("store-olinda")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.MinimumStaff["08:00"] != 1 {
		t.Errorf("Expected minimum staff 1 at 08:00, got %d", got.MinimumStaff["08:00"])
	}
}

func TestRedisStoreDAO_ListAllStoreIDs(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	_ = dao.UpsertStore(models.Store{StoreID: "store-centro"})
	_ = dao.UpsertStore(models.Store{StoreID: "store-pinheiros"})
	_ = dao.SetHistoricalConfig("store-centro", "{}") // unrelated key, must not leak in

	// Act
	ids, err := dao.ListAllStoreIDs()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "store-centro" || ids[1] != "store-pinheiros" {
		t.Errorf("Expected [store-centro store-pinheiros], got %v", ids)
	}
}

func TestRedisStoreDAO_GetHistoricalConfig_MissingIsEmpty(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	// Act
	raw, err := dao.GetHistoricalConfig("store-centro")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error on missing config, got %v", err)
	}
	if raw != "" {
		t.Errorf("Expected empty blob, got %q", raw)
	}
}

func TestRedisStoreDAO_SetAndGetHistoricalConfig(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	blob := `{"W07 2025": ["W23 2024"]}`

	// Act
	if err := dao.SetHistoricalConfig("store-centro", blob); err != nil {
		t.Fatalf("SetHistoricalConfig failed: %v", err)
	}
	got, err := dao.GetHistoricalConfig("store-centro")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != blob {
		t.Errorf("Expected blob to round-trip verbatim, got %q", got)
	}
}

func TestRedisStoreDAO_GetTrafficDay_MissIsNil(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	// Act
	day, err := dao.GetTrafficDay("store-centro", "2025-02-10")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error on cache miss, got %v", err)
	}
	if day != nil {
		t.Errorf("Expected nil day on cache miss, got %v", day)
	}
}

func TestRedisStoreDAO_SetAndGetTrafficDay(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisStoreDAO(mockClient)

	day := models.TrafficDay{
		Date:    "2025-02-10",
		Entries: map[string]int{"10:00": 40},
		Total:   40,
	}

	// Act
	if err := dao.SetTrafficDay("store-centro", day); err != nil {
		t.Fatalf("SetTrafficDay failed: %v", err)
	}
	got, err := dao.GetTrafficDay("store-centro", "2025-02-10")

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil {
		t.Fatal("Expected cached day, got nil")
	}
	if got.Entries["10:00"] != 40 {
		t.Errorf("Expected 40 entries at 10:00, got %d", got.Entries["10:00"])
	}

	// Verify the cache key is scoped per store and date
	otherDay, err := dao.GetTrafficDay("store-centro", "2025-02-11")
	if err != nil || otherDay != nil {
		t.Errorf("Expected miss for other date, got day=%v err=%v", otherDay, err)
	}
}
