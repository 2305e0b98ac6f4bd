package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"staffing-server/api/footfall"
	"staffing-server/calendar"
	"staffing-server/config"
	redisdao "staffing-server/dao/redis"
	"staffing-server/metrics"
	"staffing-server/progress"
)

// SyncResult reports one traffic sync run for a store.
type SyncResult struct {
	StoreID       string `json:"store_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	DaysSynced    int    `json:"days_synced"`
	DaysSkipped   int    `json:"days_skipped"`
	// InBackground means the run exceeded its budget and continues
	// asynchronously; it is neither a success nor a failure yet.
	InBackground bool `json:"in_background"`
}

// TrafficSyncService warms the Redis traffic cache from the upstream
// telemetry service, both periodically and on admin request.
type TrafficSyncService struct {
	storeDao      *redisdao.RedisStoreDAO
	footfallAPI   footfall.FootfallAPI
	progressStore progress.Store
	runBudget     time.Duration
}

// NewTrafficSyncService constructs a new sync service with dependencies.
func NewTrafficSyncService(
	storeDao *redisdao.RedisStoreDAO,
	footfallAPI footfall.FootfallAPI,
	progressStore progress.Store,
) *TrafficSyncService {
	return &TrafficSyncService{
		storeDao:      storeDao,
		footfallAPI:   footfallAPI,
		progressStore: progressStore,
		runBudget:     config.TRAFFIC_SYNC_RUN_TIMEOUT,
	}
}

// StartPeriodicJob launches the background warm loop at the given interval.
func (s *TrafficSyncService) StartPeriodicJob(interval time.Duration) {
	go s.startPeriodicJob(interval)
}

func (s *TrafficSyncService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[TrafficSyncService] Running periodic traffic cache warm.")
		if err := s.WarmCache(context.Background()); err != nil {
			log.Printf("[TrafficSyncService] WarmCache returned error: %v", err)
		} else {
			log.Println("[TrafficSyncService] WarmCache completed successfully.")
		}
	}
}

// WarmCache refreshes the last TRAFFIC_SYNC_WARM_DAYS days of traffic for
// every known store. Individual failures are skipped, not fatal.
func (s *TrafficSyncService) WarmCache(ctx context.Context) error {
	storeIDs, err := s.storeDao.ListAllStoreIDs()
	if err != nil {
		return fmt.Errorf("listing stores for cache warm: %w", err)
	}
	log.Printf("[TrafficSyncService] Warming traffic cache for %d stores", len(storeIDs))

	to := time.Now().UTC().AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -(config.TRAFFIC_SYNC_WARM_DAYS - 1))
	for _, storeID := range storeIDs {
		result := s.syncRange(ctx, "", storeID, from, to)
		log.Printf("[TrafficSyncService] Warmed store=%s synced=%d skipped=%d",
			storeID, result.DaysSynced, result.DaysSkipped)
	}
	return nil
}

// SyncStore runs an admin-triggered sync for one store over a date range.
// The run has a hard budget: if it is still going when the budget expires,
// it keeps running in the background and the returned result says so rather
// than reporting success or failure.
func (s *TrafficSyncService) SyncStore(ctx context.Context, sessionID, storeID string, from, to time.Time) (*SyncResult, error) {
	if _, err := s.storeDao.GetStore(storeID); err != nil {
		return nil, err
	}

	done := make(chan *SyncResult, 1)
	go func() {
		// Detached from the request context so the run survives the
		// caller giving up on it.
		result := s.syncRange(context.Background(), sessionID, storeID, from, to)
		s.record(sessionID, progress.Event{Stage: "sync_done", StoreID: storeID, Done: true})
		done <- result
	}()

	select {
	case result := <-done:
		metrics.SyncRunsTotal.WithLabelValues("completed").Inc()
		return result, nil
	case <-time.After(s.runBudget):
		log.Printf("[TrafficSyncService] Sync for store=%s exceeded %v, continuing in background",
			storeID, s.runBudget)
		metrics.SyncRunsTotal.WithLabelValues("background").Inc()
		return &SyncResult{
			StoreID:      storeID,
			From:         from.Format(calendar.DATE_FORMAT),
			To:           to.Format(calendar.DATE_FORMAT),
			InBackground: true,
		}, nil
	}
}

// syncRange fetches and caches each day of the range. Days whose fetch
// fails are skipped; simulated zeros are never written to the cache.
func (s *TrafficSyncService) syncRange(ctx context.Context, sessionID, storeID string, from, to time.Time) *SyncResult {
	result := &SyncResult{
		StoreID: storeID,
		From:    from.Format(calendar.DATE_FORMAT),
		To:      to.Format(calendar.DATE_FORMAT),
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(calendar.DATE_FORMAT)

		fetchCtx, cancel := context.WithTimeout(ctx, config.TRAFFIC_FETCH_TIMEOUT)
		day, err := s.footfallAPI.GetDayTraffic(fetchCtx, storeID, dateStr)
		cancel()
		if err != nil {
			log.Printf("[TrafficSyncService] Fetch failed for store=%s date=%s: %v", storeID, dateStr, err)
			metrics.TrafficFetchFailuresTotal.Inc()
			result.DaysSkipped++
			s.record(sessionID, progress.Event{Stage: "sync_day_failed", StoreID: storeID, Message: dateStr})
			continue
		}

		if err := s.storeDao.SetTrafficDay(storeID, *day); err != nil {
			log.Printf("[TrafficSyncService] Cache write failed for store=%s date=%s: %v", storeID, dateStr, err)
			result.DaysSkipped++
			continue
		}
		result.DaysSynced++
		s.record(sessionID, progress.Event{Stage: "sync_day", StoreID: storeID, Message: dateStr})
	}
	return result
}

func (s *TrafficSyncService) record(sessionID string, ev progress.Event) {
	if s.progressStore == nil || sessionID == "" {
		return
	}
	s.progressStore.Record(sessionID, ev)
}
