package models

import "fmt"

// Store represents a retail store with its staffing parameters.
// The record store owns these fields; the engine only writes HistoricalConfig.
type Store struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`

	// DesiredAttention is the average number of customers one staff member
	// can attend to in a two-unit time slot. Divisor of the staffing formula.
	DesiredAttention float64 `json:"desired_attention"`

	// GrowthFactor is the expected traffic growth versus the reference
	// period, as a decimal (0.05 = 5%).
	GrowthFactor float64 `json:"growth_factor"`

	// Country drives the time-slot granularity in the scheduling UI
	// (15 vs 30 minutes). Not used by the engine itself.
	Country string `json:"country,omitempty"`

	OpenTime  string `json:"open_time"`  // "HH:MM"
	CloseTime string `json:"close_time"` // "HH:MM"

	// MinimumStaff maps hour labels ("HH:00") to a minimum headcount floor.
	MinimumStaff map[string]int `json:"minimum_staff,omitempty"`
}

func (s *Store) ToString() string {
	return fmt.Sprintf("Store(id=%s, name=%s, attention=%.2f, growth=%.2f)",
		s.StoreID, s.StoreName, s.DesiredAttention, s.GrowthFactor)
}
