package footfall

import (
	"context"
	"fmt"

	"staffing-server/config"
	"staffing-server/models"
	"staffing-server/traffic"
	"staffing-server/util"
)

// FootfallApiClientMock embeds mocked logic for the footfall api client
type FootfallApiClientMock struct {
}

// NewFootfallApiClientMock creates a new instance of FootfallApiClientMock
func NewFootfallApiClientMock() *FootfallApiClientMock {
	return &FootfallApiClientMock{}
}

// SetCredentials is a no-op on the mock.
func (c *FootfallApiClientMock) SetCredentials(apiKey string) {}

// GetDayTraffic serves the fixture traffic profile for any store and date.
func (c *FootfallApiClientMock) GetDayTraffic(ctx context.Context, storeID, date string) (*models.TrafficDay, error) {
	response, err := util.ReadTrafficDayFromJSON(config.GetResourcePath(config.TRAFFIC_DAY_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read traffic day response from json")
		return nil, err
	}

	response.Date = date
	traffic.Recompute(response)
	return response, nil
}
