package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"staffing-server/config"
	"staffing-server/historical"
	"staffing-server/metrics"
	"staffing-server/models"
	"staffing-server/progress"
)

// BulkApplyService applies a historical-config entry to many stores at once.
// The fan-out is best effort: per-store failures are collected, never rolled
// back, and never abort the remaining stores.
type BulkApplyService struct {
	configService *HistoricalConfigService
	progressStore progress.Store
	batchSize     int
	pause         time.Duration
}

// NewBulkApplyService constructs the service with its dependencies.
func NewBulkApplyService(configService *HistoricalConfigService, progressStore progress.Store) *BulkApplyService {
	return &BulkApplyService{
		configService: configService,
		progressStore: progressStore,
		batchSize:     config.BULK_APPLY_BATCH_SIZE,
		pause:         config.BULK_APPLY_BATCH_PAUSE,
	}
}

// ApplyToMany writes the entry for targetWeek to every listed store.
// Stores are processed in sequential batches; within a batch they run
// concurrently, and batches are separated by a short pause to respect
// upstream rate limits. An invalid target week or entry fails the whole run
// before any store is touched.
func (s *BulkApplyService) ApplyToMany(
	ctx context.Context,
	sessionID string,
	storeIDs []string,
	targetWeek string,
	entry historical.Entry,
) (*models.BulkApplyResult, error) {
	if err := historical.Validate(targetWeek, entry); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &models.BulkApplyResult{TotalAttempted: len(storeIDs)}
	var mu sync.Mutex

	log.Printf("[BulkApplyService] Applying %s to %d stores in batches of %d",
		targetWeek, len(storeIDs), s.batchSize)

	for batchStart := 0; batchStart < len(storeIDs); batchStart += s.batchSize {
		batchEnd := batchStart + s.batchSize
		if batchEnd > len(storeIDs) {
			batchEnd = len(storeIDs)
		}
		batch := storeIDs[batchStart:batchEnd]

		if err := ctx.Err(); err != nil {
			mu.Lock()
			for _, storeID := range storeIDs[batchStart:] {
				result.Errors = append(result.Errors, models.BulkStoreError{
					StoreID: storeID,
					Message: fmt.Sprintf("run canceled: %v", err),
				})
			}
			mu.Unlock()
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.batchSize)
		for _, storeID := range batch {
			storeID := storeID
			g.Go(func() error {
				if err := s.configService.SetReference(gctx, storeID, targetWeek, entry); err != nil {
					mu.Lock()
					result.Errors = append(result.Errors, models.BulkStoreError{
						StoreID: storeID,
						Message: err.Error(),
					})
					mu.Unlock()
					metrics.BulkApplyStoresTotal.WithLabelValues("failure").Inc()
					s.record(sessionID, progress.Event{Stage: "apply_failed", StoreID: storeID, Message: err.Error()})
					log.Printf("[BulkApplyService] Apply failed for store=%s: %v", storeID, err)
					return nil // one store's failure never aborts the batch
				}
				mu.Lock()
				result.Succeeded = append(result.Succeeded, storeID)
				mu.Unlock()
				metrics.BulkApplyStoresTotal.WithLabelValues("success").Inc()
				s.record(sessionID, progress.Event{Stage: "applied", StoreID: storeID})
				return nil
			})
		}
		_ = g.Wait()

		if batchEnd < len(storeIDs) {
			select {
			case <-ctx.Done():
			case <-time.After(s.pause):
			}
		}
	}

	result.SuccessCount = len(result.Succeeded)
	result.FailureCount = len(result.Errors)
	metrics.BulkApplyDurationSeconds.Observe(time.Since(start).Seconds())

	summary := fmt.Sprintf("%d succeeded, %d failed of %d attempted",
		result.SuccessCount, result.FailureCount, result.TotalAttempted)
	s.record(sessionID, progress.Event{Stage: "done", Done: true, Message: summary})
	log.Printf("[BulkApplyService] Finished: %s", summary)
	return result, nil
}

func (s *BulkApplyService) record(sessionID string, ev progress.Event) {
	if s.progressStore == nil || sessionID == "" {
		return
	}
	s.progressStore.Record(sessionID, ev)
}
