package services

import (
	"context"
	"fmt"
	"log"

	"staffing-server/calendar"
	redisdao "staffing-server/dao/redis"
	"staffing-server/historical"
)

// HistoricalConfigService resolves and writes the per-store historical
// week configuration.
type HistoricalConfigService struct {
	storeDao *redisdao.RedisStoreDAO
}

// NewHistoricalConfigService constructs the service with its DAO dependency.
func NewHistoricalConfigService(storeDao *redisdao.RedisStoreDAO) *HistoricalConfigService {
	return &HistoricalConfigService{storeDao: storeDao}
}

// Resolve returns the configuration entry for a store and target week.
// An absent or malformed blob and an unconfigured target week both yield a
// KindAbsent entry: callers fall back to standard traffic lookup, this is
// not an error.
func (s *HistoricalConfigService) Resolve(ctx context.Context, storeID, targetWeek string) (historical.Entry, error) {
	if _, _, err := calendar.ParseWeekLabel(targetWeek); err != nil {
		return historical.Entry{}, err
	}
	raw, err := s.storeDao.GetHistoricalConfig(storeID)
	if err != nil {
		return historical.Entry{}, fmt.Errorf("resolving config for store %s: %w", storeID, err)
	}
	return historical.Parse(raw).Entry(targetWeek), nil
}

// GetRawConfig returns the store's configuration blob, "" when unset.
func (s *HistoricalConfigService) GetRawConfig(ctx context.Context, storeID string) (string, error) {
	if _, err := s.storeDao.GetStore(storeID); err != nil {
		return "", err
	}
	return s.storeDao.GetHistoricalConfig(storeID)
}

// SetReference merges one target-week entry into the store's configuration.
// The write is read-merge-write over the whole blob: all other target weeks
// are preserved, concurrent writers to the same store race with last write
// winning.
func (s *HistoricalConfigService) SetReference(ctx context.Context, storeID, targetWeek string, entry historical.Entry) error {
	if _, err := s.storeDao.GetStore(storeID); err != nil {
		return err
	}
	raw, err := s.storeDao.GetHistoricalConfig(storeID)
	if err != nil {
		return fmt.Errorf("reading config for store %s: %w", storeID, err)
	}
	merged, err := historical.Merge(raw, targetWeek, entry)
	if err != nil {
		return err
	}
	if err := s.storeDao.SetHistoricalConfig(storeID, merged); err != nil {
		return fmt.Errorf("writing config for store %s: %w", storeID, err)
	}
	log.Printf("[HistoricalConfigService] Updated config for store=%s target=%s (%s)",
		storeID, targetWeek, entry.Describe())
	return nil
}
