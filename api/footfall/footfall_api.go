package footfall

import (
	"context"

	"staffing-server/models"
)

// FootfallAPI defines the interface for the telemetry service that counts
// store entries. Absence of a record for an hour means zero traffic.
type FootfallAPI interface {
	GetDayTraffic(ctx context.Context, storeID, date string) (*models.TrafficDay, error)
	SetCredentials(apiKey string)
}
