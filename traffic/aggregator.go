package traffic

import (
	"fmt"
	"sort"

	"staffing-server/models"
)

// Policy selects how reference days are combined into one hourly profile.
// The engine uses a single store-wide policy (PolicySum); it is never chosen
// per call.
type Policy int

const (
	// PolicySum adds the counts of every reference day per hour.
	PolicySum Policy = iota
	// PolicyAverage averages the counts per hour, rounded half up.
	PolicyAverage
	// PolicyFirst takes the count from the first reference day carrying the hour.
	PolicyFirst
)

// DefaultPolicy is the engine-wide aggregation policy.
const DefaultPolicy = PolicySum

// HourLabel formats an hour of day as the canonical "HH:00" label.
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SimulatedDay builds an all-zero traffic profile flagged as synthetic,
// substituted when the upstream traffic source is unavailable.
func SimulatedDay(date string) models.TrafficDay {
	entries := make(map[string]int, 24)
	for h := 0; h < 24; h++ {
		entries[HourLabel(h)] = 0
	}
	day := models.TrafficDay{Date: date, Entries: entries, Simulated: true}
	Recompute(&day)
	return day
}

// Recompute refreshes the summary metadata from the hourly entries. The peak
// hour tie-break is the earliest hour label.
func Recompute(d *models.TrafficDay) {
	if d.Entries == nil {
		d.Entries = make(map[string]int)
	}
	labels := sortedHours(d.Entries)

	d.Total = 0
	d.PeakHour = ""
	d.PeakCount = 0
	d.HourCount = len(labels)
	for _, label := range labels {
		count := d.Entries[label]
		d.Total += count
		if count > d.PeakCount || d.PeakHour == "" {
			d.PeakHour = label
			d.PeakCount = count
		}
	}
}

// Aggregate merges reference days into a single hourly profile for the
// target date. Every hour present in any input contributes; an hour missing
// from some inputs counts as zero for those inputs. The combination is
// commutative for PolicySum and PolicyAverage. Zero inputs degrade to a
// simulated zero profile.
func Aggregate(targetDate string, days []models.TrafficDay, policy Policy) models.TrafficDay {
	if len(days) == 0 {
		return SimulatedDay(targetDate)
	}

	entries := make(map[string]int)
	simulated := false
	for _, day := range days {
		if day.Simulated {
			simulated = true
		}
		for label := range day.Entries {
			if _, seen := entries[label]; !seen {
				entries[label] = 0
			}
		}
	}

	for label := range entries {
		switch policy {
		case PolicyAverage:
			sum := 0
			for _, day := range days {
				sum += day.Entries[label]
			}
			entries[label] = roundHalfUp(float64(sum) / float64(len(days)))
		case PolicyFirst:
			for _, day := range days {
				if count, ok := day.Entries[label]; ok {
					entries[label] = count
					break
				}
			}
		default: // PolicySum
			sum := 0
			for _, day := range days {
				sum += day.Entries[label]
			}
			entries[label] = sum
		}
	}

	out := models.TrafficDay{Date: targetDate, Entries: entries, Simulated: simulated}
	Recompute(&out)
	return out
}

func sortedHours(entries map[string]int) []string {
	labels := make([]string, 0, len(entries))
	for label := range entries {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func roundHalfUp(v float64) int {
	return int(v + 0.5)
}
