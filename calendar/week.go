package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "staffing-server/errors"
)

// DATE_FORMAT is the wire format for calendar dates.
const DATE_FORMAT = "2006-01-02"

// WEEK_LABEL_FORMAT is the canonical week label form, e.g. "W07 2025".
const WEEK_LABEL_FORMAT = "W%02d %d"

var weekLabelPattern = regexp.MustCompile(`^W(\d{2}) (\d{4})$`)

// mondayOf truncates a date to the Monday of its week.
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0 ... Sunday = 6
	return day.AddDate(0, 0, -offset)
}

// week1Monday returns the Monday of week 1 of the given year: the week
// containing January 4th.
func week1Monday(year int) time.Time {
	return mondayOf(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
}

// WeekLabelOf converts a date to its canonical "W<NN> <YYYY>" label.
// Weeks run Monday to Sunday; the label year is the calendar year of the
// week's Monday, so late-December Mondays yield W53 of the closing year.
func WeekLabelOf(t time.Time) (string, error) {
	if t.Year() < 1 || t.Year() > 9999 {
		return "", apperrors.NewValidationError("date", t.Format(DATE_FORMAT), apperrors.ErrDateOutOfRange)
	}
	monday := mondayOf(t)
	year := monday.Year()
	week := int(monday.Sub(week1Monday(year)).Hours()/(24*7)) + 1
	return fmt.Sprintf(WEEK_LABEL_FORMAT, week, year), nil
}

// ParseWeekLabel splits a label into week number and year, rejecting
// anything that is not exactly "W<NN> <YYYY>" with NN in 1..53.
func ParseWeekLabel(label string) (week int, year int, err error) {
	m := weekLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, apperrors.NewValidationError("week_label", label, apperrors.ErrMalformedWeekLabel)
	}
	week, _ = strconv.Atoi(m[1])
	year, _ = strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, apperrors.NewValidationError("week_label", label, apperrors.ErrMalformedWeekLabel)
	}
	return week, year, nil
}

// DateRangeOf returns the Monday and Sunday of the labeled week. Labels that
// do not exist for their year (a W53 in a 52-week year) are rejected.
func DateRangeOf(label string) (start, end time.Time, err error) {
	week, year, err := ParseWeekLabel(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = week1Monday(year).AddDate(0, 0, (week-1)*7)

	// A week number that overflows into the next year does not exist for
	// this year (a W53 label in a 52-week year).
	if start.Year() > year {
		return time.Time{}, time.Time{},
			apperrors.NewValidationError("week_label", label, apperrors.ErrMalformedWeekLabel)
	}
	return start, start.AddDate(0, 0, 6), nil
}

// DatesOf returns the seven dates of the labeled week, Monday first.
func DatesOf(label string) ([]time.Time, error) {
	start, _, err := DateRangeOf(label)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates, nil
}

// SameWeekdayIn maps a target date onto the same weekday of a reference week.
func SameWeekdayIn(refLabel string, target time.Time) (time.Time, error) {
	start, _, err := DateRangeOf(refLabel)
	if err != nil {
		return time.Time{}, err
	}
	offset := (int(target.Weekday()) + 6) % 7
	return start.AddDate(0, 0, offset), nil
}

// ParseDate parses a "YYYY-MM-DD" string into a UTC date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DATE_FORMAT, s)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("date", s, err)
	}
	return t, nil
}
