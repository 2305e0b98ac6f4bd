package historical

import (
	"encoding/json"
	"sort"
	"strings"

	"staffing-server/calendar"
	apperrors "staffing-server/errors"
)

// DAY_MAPPING_TYPE tags the day-to-day mapping variant in the stored JSON.
const DAY_MAPPING_TYPE = "comparable_por_dia"

// Kind discriminates the per-target-week configuration variants.
type Kind int

const (
	KindAbsent Kind = iota
	KindWeekList
	KindDayMapping
)

// Entry is the decoded configuration for one target week: exactly one of
// Weeks (reference week labels) or Mapping (target date -> reference date)
// is populated, depending on Kind.
type Entry struct {
	Kind    Kind
	Weeks   []string
	Mapping map[string]string
}

// ReferenceDateFor looks up the mapped reference date for a target date.
// Only meaningful for KindDayMapping; a missing day means that single day is
// not configured.
func (e Entry) ReferenceDateFor(targetDate string) (string, bool) {
	if e.Kind != KindDayMapping {
		return "", false
	}
	ref, ok := e.Mapping[targetDate]
	return ref, ok
}

// Describe renders the entry's reference source for audit output.
func (e Entry) Describe() string {
	switch e.Kind {
	case KindWeekList:
		return strings.Join(e.Weeks, ", ")
	case KindDayMapping:
		return DAY_MAPPING_TYPE
	default:
		return ""
	}
}

// Config is the decoded per-store historical configuration blob. Raw values
// are preserved verbatim so that merging one key never disturbs the others,
// including keys this engine does not understand.
type Config struct {
	entries map[string]Entry
	raw     map[string]json.RawMessage
}

// Entry returns the configuration for a target week, KindAbsent when the
// week is not configured.
func (c Config) Entry(targetWeek string) Entry {
	return c.entries[targetWeek]
}

// TargetWeeks lists the configured target week labels in sorted order.
func (c Config) TargetWeeks() []string {
	weeks := make([]string, 0, len(c.entries))
	for w := range c.entries {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	return weeks
}

// dayMappingJSON is the wire shape of the day-mapping variant.
type dayMappingJSON struct {
	Type    string            `json:"type"`
	Mapping map[string]string `json:"mapping"`
}

// Parse decodes a raw configuration blob. It is total: malformed JSON, a
// non-object document, or unrecognized entry shapes all degrade to absent
// entries rather than errors.
func Parse(raw string) Config {
	c := Config{
		entries: make(map[string]Entry),
		raw:     make(map[string]json.RawMessage),
	}
	if strings.TrimSpace(raw) == "" {
		return c
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// Arrays, primitives, null and garbage all land here.
		return c
	}
	c.raw = doc
	for targetWeek, value := range doc {
		if entry, ok := decodeEntry(value); ok {
			c.entries[targetWeek] = entry
		}
	}
	return c
}

func decodeEntry(value json.RawMessage) (Entry, bool) {
	var weeks []string
	if err := json.Unmarshal(value, &weeks); err == nil {
		if len(weeks) == 0 {
			return Entry{}, false
		}
		for _, w := range weeks {
			if _, _, err := calendar.ParseWeekLabel(w); err != nil {
				return Entry{}, false
			}
		}
		return Entry{Kind: KindWeekList, Weeks: weeks}, true
	}

	var dm dayMappingJSON
	if err := json.Unmarshal(value, &dm); err == nil && dm.Type == DAY_MAPPING_TYPE && dm.Mapping != nil {
		mapping := make(map[string]string, len(dm.Mapping))
		for target, ref := range dm.Mapping {
			if _, err := calendar.ParseDate(target); err != nil {
				continue
			}
			if _, err := calendar.ParseDate(ref); err != nil {
				continue
			}
			mapping[target] = ref
		}
		if len(mapping) == 0 {
			return Entry{}, false
		}
		return Entry{Kind: KindDayMapping, Mapping: mapping}, true
	}

	return Entry{}, false
}

// Validate checks an entry before it is written.
func Validate(targetWeek string, e Entry) error {
	if _, _, err := calendar.ParseWeekLabel(targetWeek); err != nil {
		return err
	}
	switch e.Kind {
	case KindWeekList:
		if len(e.Weeks) == 0 {
			return apperrors.NewValidationError("weeks", "", apperrors.ErrEmptyReferenceWeeks)
		}
		for _, w := range e.Weeks {
			if _, _, err := calendar.ParseWeekLabel(w); err != nil {
				return err
			}
		}
	case KindDayMapping:
		if len(e.Mapping) == 0 {
			return apperrors.NewValidationError("mapping", "", apperrors.ErrEmptyDayMapping)
		}
		for target, ref := range e.Mapping {
			if _, err := calendar.ParseDate(target); err != nil {
				return err
			}
			if _, err := calendar.ParseDate(ref); err != nil {
				return err
			}
		}
	default:
		return apperrors.NewValidationError("entry", "", apperrors.ErrNotConfigured)
	}
	return nil
}

func encodeEntry(e Entry) (json.RawMessage, error) {
	switch e.Kind {
	case KindWeekList:
		return json.Marshal(e.Weeks)
	case KindDayMapping:
		return json.Marshal(dayMappingJSON{Type: DAY_MAPPING_TYPE, Mapping: e.Mapping})
	default:
		return nil, apperrors.NewValidationError("entry", "", apperrors.ErrNotConfigured)
	}
}

// Merge sets one target-week key in the raw blob and returns the new blob.
// All other keys are carried over verbatim (read-merge-write, last writer
// wins). A malformed existing blob is replaced by a fresh document.
func Merge(raw string, targetWeek string, e Entry) (string, error) {
	if err := Validate(targetWeek, e); err != nil {
		return "", err
	}
	encoded, err := encodeEntry(e)
	if err != nil {
		return "", err
	}
	doc := Parse(raw).raw
	doc[targetWeek] = encoded
	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
