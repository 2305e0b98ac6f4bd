package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"staffing-server/db"
	apperrors "staffing-server/errors"
	"staffing-server/models"
)

const STORE_KEY_FORMAT_V1 = "store_v1:%s"

// HISTORICAL_CONFIG_KEY_FORMAT_V1 holds one opaque JSON blob per store.
const HISTORICAL_CONFIG_KEY_FORMAT_V1 = "historical_config_v1:%s"

// TRAFFIC_DAY_KEY_FORMAT_V1 caches one day of hourly traffic per store.
const TRAFFIC_DAY_KEY_FORMAT_V1 = "traffic_day_v1:%s_%s"

// RedisStoreDAO handles store record operations using Redis.
type RedisStoreDAO struct {
	client db.RedisClient
}

// NewRedisStoreDAO initializes a RedisStoreDAO with the Redis client.
func NewRedisStoreDAO(client db.RedisClient) *RedisStoreDAO {
	return &RedisStoreDAO{client: client}
}

// UpsertStore stores the store record as JSON.
func (dao *RedisStoreDAO) UpsertStore(s models.Store) error {
	key := fmt.Sprintf(STORE_KEY_FORMAT_V1, s.StoreID)
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal store %s: %w", s.StoreID, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set store in redis: %w", err)
	}
	return nil
}

// GetStore retrieves a store record by its ID.
func (dao *RedisStoreDAO) GetStore(storeID string) (*models.Store, error) {
	key := fmt.Sprintf(STORE_KEY_FORMAT_V1, storeID)
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("store %s: %w", storeID, apperrors.ErrStoreNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store from redis: %w", err)
	}
	var s models.Store
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal store JSON: %w", err)
	}
	return &s, nil
}

// ListAllStoreIDs returns the IDs of every stored store record.
func (dao *RedisStoreDAO) ListAllStoreIDs() ([]string, error) {
	pattern := fmt.Sprintf(STORE_KEY_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list store keys: %w", err)
	}
	prefix := fmt.Sprintf(STORE_KEY_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// GetHistoricalConfig reads the raw historical-config blob for a store.
// A missing key means "no configuration" and returns the empty string.
func (dao *RedisStoreDAO) GetHistoricalConfig(storeID string) (string, error) {
	key := fmt.Sprintf(HISTORICAL_CONFIG_KEY_FORMAT_V1, storeID)
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get historical config from redis: %w", err)
	}
	return str, nil
}

// SetHistoricalConfig writes the raw historical-config blob for a store.
// The blob is never locked: writers do read-merge-write and the last write
// wins for the whole value.
func (dao *RedisStoreDAO) SetHistoricalConfig(storeID, raw string) error {
	key := fmt.Sprintf(HISTORICAL_CONFIG_KEY_FORMAT_V1, storeID)
	if err := dao.client.Set(key, raw); err != nil {
		return fmt.Errorf("failed to set historical config in redis: %w", err)
	}
	return nil
}

// SetTrafficDay caches one day of hourly traffic for a store.
func (dao *RedisStoreDAO) SetTrafficDay(storeID string, day models.TrafficDay) error {
	key := fmt.Sprintf(TRAFFIC_DAY_KEY_FORMAT_V1, storeID, day.Date)
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to marshal traffic day for store %s date %s: %w", storeID, day.Date, err)
	}
	if err := dao.client.Set(key, string(data)); err != nil {
		return fmt.Errorf("failed to set traffic day in redis: %w", err)
	}
	return nil
}

// GetTrafficDay retrieves a cached traffic day. Returns nil on cache miss.
func (dao *RedisStoreDAO) GetTrafficDay(storeID, date string) (*models.TrafficDay, error) {
	key := fmt.Sprintf(TRAFFIC_DAY_KEY_FORMAT_V1, storeID, date)
	str, err := dao.client.Get(key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get traffic day from redis: %w", err)
	}
	var d models.TrafficDay
	if err := json.Unmarshal([]byte(str), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal traffic day JSON: %w", err)
	}
	return &d, nil
}
