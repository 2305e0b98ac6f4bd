package models

// TrafficDay holds the hourly entry counts for a single store day.
type TrafficDay struct {
	Date    string         `json:"date"`    // "YYYY-MM-DD"
	Entries map[string]int `json:"entries"` // "HH:00" -> entry count

	// Summary metadata, recomputed whenever Entries changes.
	Total     int    `json:"total"`
	PeakHour  string `json:"peak_hour"`
	PeakCount int    `json:"peak_count"`
	HourCount int    `json:"hour_count"`

	// Simulated marks synthetic zero data substituted when the upstream
	// traffic source was unavailable.
	Simulated bool `json:"simulated"`
}
