package footfall

import (
	"context"
	"fmt"
	"net/url"

	"staffing-server/api"
	apperrors "staffing-server/errors"
	"staffing-server/models"
	"staffing-server/traffic"
)

// dayTrafficResponse is the wire shape of the telemetry service's day endpoint.
type dayTrafficResponse struct {
	StoreID string         `json:"store_id"`
	Date    string         `json:"date"`
	Entries map[string]int `json:"entries"`
}

// FootfallApiClient embeds the common HTTPClient
type FootfallApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties

	apiKey string
}

// NewFootfallApiClient creates a new instance of FootfallApiClient
func NewFootfallApiClient(httpClient *api.HTTPClient) *FootfallApiClient {
	return &FootfallApiClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials configures the API key sent with every request.
func (c *FootfallApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// GetDayTraffic retrieves the hourly entry counts for a store and date.
// Transport and decode failures are reported as UpstreamError so callers can
// degrade to simulated data.
func (c *FootfallApiClient) GetDayTraffic(ctx context.Context, storeID, date string) (*models.TrafficDay, error) {
	var response dayTrafficResponse
	endpoint := fmt.Sprintf("/stores/%s/traffic/day?date=%s", url.PathEscape(storeID), url.QueryEscape(date))

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["X-Api-Key"] = c.apiKey
	}

	if err := c.Request(ctx, "GET", endpoint, headers, nil, &response); err != nil {
		return nil, &apperrors.UpstreamError{Collaborator: "traffic", Err: err}
	}

	day := models.TrafficDay{
		Date:    date,
		Entries: response.Entries,
	}
	traffic.Recompute(&day)
	return &day, nil
}
