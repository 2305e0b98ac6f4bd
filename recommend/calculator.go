package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"staffing-server/calendar"
	apperrors "staffing-server/errors"
	"staffing-server/models"
	"staffing-server/traffic"
)

// Params are the formula parameters shared by every hour of a run.
type Params struct {
	// DesiredAttention is the number of customers one staff member attends
	// in a two-unit time slot. Must be strictly positive.
	DesiredAttention float64
	// GrowthFactor is the expected traffic growth versus the reference
	// period, as a decimal.
	GrowthFactor float64
	// Unrounded reports the exact value at 2 decimals instead of the
	// round-half-up integer; no minimum floor is applied in this mode.
	Unrounded bool
}

// DayParams extend Params with the store's opening window and per-hour
// minimum staff floors.
type DayParams struct {
	Params
	OpenHour     int // inclusive
	CloseHour    int // exclusive
	MinimumStaff map[string]int
}

// Hour converts one hour of traffic into a staffing recommendation:
//
//	exact = entries * (1 + growthFactor) / (desiredAttention / 2)
//
// The recommended value is the round-half-up integer of exact, raised to the
// configured minimum when one applies. Exact is never floored or rounded in
// the audit fields.
func Hour(hourLabel string, entries int, p Params, minimum int, hasMinimum bool) (models.RecommendationHour, error) {
	if p.DesiredAttention <= 0 {
		return models.RecommendationHour{}, apperrors.NewValidationError(
			"desired_attention",
			strconv.FormatFloat(p.DesiredAttention, 'f', -1, 64),
			apperrors.ErrNonPositiveAttention,
		)
	}

	exact := float64(entries) * (1 + p.GrowthFactor) / (p.DesiredAttention / 2)

	rh := models.RecommendationHour{
		Hour:             hourLabel,
		Entries:          entries,
		Exact:            exact,
		DesiredAttention: p.DesiredAttention,
		GrowthFactor:     p.GrowthFactor,
	}

	if p.Unrounded {
		rh.Recommended = math.Floor(exact*100+0.5) / 100
		return rh, nil
	}

	recommended := math.Floor(exact + 0.5)
	if hasMinimum && recommended < float64(minimum) {
		recommended = float64(minimum)
		rh.MinimumApplied = true
		rh.Minimum = minimum
	}
	rh.Recommended = recommended
	return rh, nil
}

// BuildDay restricts a traffic profile to the store's open hours and
// recommends staffing per hour. Hours outside [open, close) are dropped
// entirely; open hours missing from the profile count as zero traffic.
// The exact and recommended daily totals are independent sums and may differ.
func BuildDay(date string, profile models.TrafficDay, dp DayParams) (models.RecommendationDay, error) {
	day := models.RecommendationDay{
		Date:      date,
		Simulated: profile.Simulated,
	}
	if t, err := calendar.ParseDate(date); err == nil {
		day.DayText = t.Weekday().String()
	}

	for h := dp.OpenHour; h < dp.CloseHour; h++ {
		label := traffic.HourLabel(h)
		minimum, hasMinimum := dp.MinimumStaff[label]
		rh, err := Hour(label, profile.Entries[label], dp.Params, minimum, hasMinimum)
		if err != nil {
			return models.RecommendationDay{}, err
		}
		day.Hours = append(day.Hours, rh)
		day.TotalEntries += rh.Entries
		day.TotalExact += rh.Exact
		day.TotalRecommended += rh.Recommended
	}
	return day, nil
}

// BuildWeek aggregates daily recommendations into the weekly summary. The
// peak day is the one with the highest entry count, earliest date on ties.
func BuildWeek(storeID, weekLabel string, days []models.RecommendationDay) models.RecommendationWeek {
	week := models.RecommendationWeek{
		StoreID: storeID,
		Week:    weekLabel,
		Days:    days,
	}
	for _, day := range days {
		week.TotalEntries += day.TotalEntries
		week.TotalExact += day.TotalExact
		week.TotalRecommended += day.TotalRecommended
		if day.Simulated {
			week.Simulated = true
		}
		if week.PeakDay == "" || day.TotalEntries > week.PeakDayEntries {
			week.PeakDay = day.Date
			week.PeakDayEntries = day.TotalEntries
		}
	}
	if len(days) > 0 {
		week.AveragePerDay = float64(week.TotalEntries) / float64(len(days))
	}
	return week
}

// OpenCloseHours parses the store's "HH:MM" opening window into hour bounds.
// "24:00" is accepted as an end-of-day close time.
func OpenCloseHours(store *models.Store) (open, close int, err error) {
	open, err = parseHour(store.OpenTime)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("open_time", store.OpenTime, err)
	}
	close, err = parseHour(store.CloseTime)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("close_time", store.CloseTime, err)
	}
	return open, close, nil
}

func parseHour(hhmm string) (int, error) {
	if hhmm == "24:00" {
		return 24, nil
	}
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return 0, fmt.Errorf("invalid minutes in %q", hhmm)
	}
	return hour, nil
}
