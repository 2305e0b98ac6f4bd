package models

// BulkStoreError records one store's failure during a bulk apply run.
type BulkStoreError struct {
	StoreID string `json:"store_id"`
	Message string `json:"message"`
}

// BulkApplyResult reports the outcome of a best-effort bulk configuration
// fan-out. No rollback is performed on partial failure.
type BulkApplyResult struct {
	Succeeded []string         `json:"succeeded"`
	Errors    []BulkStoreError `json:"errors"`

	TotalAttempted int `json:"total_attempted"`
	SuccessCount   int `json:"success_count"`
	FailureCount   int `json:"failure_count"`
}
