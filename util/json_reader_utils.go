package util

import (
	"encoding/json"
	"fmt"
	"os"

	"staffing-server/models"
)

// ReadTrafficDayFromJSON loads a TrafficDay from JSON on disk.
func ReadTrafficDayFromJSON(filePath string) (*models.TrafficDay, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var day models.TrafficDay
	if err := json.Unmarshal(data, &day); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TrafficDay: %w", err)
	}
	return &day, nil
}

// ReadStoresFromJSON loads a slice of store records from JSON on disk.
func ReadStoresFromJSON(filePath string) ([]models.Store, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var stores []models.Store
	if err := json.Unmarshal(data, &stores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stores: %w", err)
	}
	return stores, nil
}

// PrintRecommendationWeekPartially prints key fields of a RecommendationWeek.
func PrintRecommendationWeekPartially(week *models.RecommendationWeek) {
	fmt.Printf("Store: %s\n", week.StoreID)
	fmt.Printf("Week: %s\n", week.Week)
	fmt.Printf("Total entries: %d\n", week.TotalEntries)
	fmt.Printf("Total recommended: %.2f\n", week.TotalRecommended)
	fmt.Printf("Peak day: %s (%d entries)\n", week.PeakDay, week.PeakDayEntries)
	if week.Simulated {
		fmt.Println("Warning: result includes simulated traffic data")
	}
}
