package models

// RecommendationHour is the staffing recommendation for a single store hour.
// Exact always carries the raw formula output; Recommended carries the
// round-half-up value after any minimum floor (or the 2-decimal exact value
// in unrounded mode).
type RecommendationHour struct {
	Hour        string  `json:"hour"` // "HH:00"
	Entries     int     `json:"entries"`
	Exact       float64 `json:"exact"`
	Recommended float64 `json:"recommended"`

	// Formula parameters retained for auditability.
	DesiredAttention float64 `json:"desired_attention"`
	GrowthFactor     float64 `json:"growth_factor"`
	MinimumApplied   bool    `json:"minimum_applied"`
	Minimum          int     `json:"minimum,omitempty"`
}

// RecommendationDay aggregates the open hours of a single date.
type RecommendationDay struct {
	Date    string               `json:"date"` // "YYYY-MM-DD"
	DayText string               `json:"day_text"`
	Hours   []RecommendationHour `json:"hours"`

	TotalEntries     int     `json:"total_entries"`
	TotalExact       float64 `json:"total_exact"`
	TotalRecommended float64 `json:"total_recommended"`

	// Simulated is set when the day's traffic profile used synthetic data.
	Simulated bool `json:"simulated"`
	// HistoricalReference names the resolved source ("W24 2024, W25 2024",
	// a mapped date, or "" when the day fell back to standard lookup).
	HistoricalReference string `json:"historical_reference,omitempty"`
}

// RecommendationWeek is the weekly summary returned to callers.
type RecommendationWeek struct {
	StoreID   string              `json:"store_id"`
	Week      string              `json:"week"` // "W<NN> <YYYY>"
	Days      []RecommendationDay `json:"days"`

	TotalEntries     int     `json:"total_entries"`
	TotalExact       float64 `json:"total_exact"`
	TotalRecommended float64 `json:"total_recommended"`

	// PeakDay is the date with the highest entry count, earliest date on ties.
	PeakDay        string  `json:"peak_day"`
	PeakDayEntries int     `json:"peak_day_entries"`
	AveragePerDay  float64 `json:"average_per_day"`

	// Simulated is set when any constituent day used synthetic traffic.
	Simulated bool `json:"simulated"`
	// UsedHistoricalConfig is false when every day fell back to standard lookup.
	UsedHistoricalConfig bool `json:"used_historical_config"`
}
