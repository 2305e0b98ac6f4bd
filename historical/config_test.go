package historical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "staffing-server/errors"
)

func TestParse_WeekList(t *testing.T) {
	raw := `{"W07 2025": ["W23 2024", "W30 2024"]}`

	c := Parse(raw)

	entry := c.Entry("W07 2025")
	assert.Equal(t, KindWeekList, entry.Kind)
	assert.Equal(t, []string{"W23 2024", "W30 2024"}, entry.Weeks)
	assert.Equal(t, []string{"W07 2025"}, c.TargetWeeks())
}

func TestParse_DayMapping(t *testing.T) {
	raw := `{"W07 2025": {"type": "comparable_por_dia", "mapping": {
		"2025-02-10": "2024-06-03",
		"2025-02-11": "2024-06-04"
	}}}`

	c := Parse(raw)

	entry := c.Entry("W07 2025")
	require.Equal(t, KindDayMapping, entry.Kind)

	ref, ok := entry.ReferenceDateFor("2025-02-10")
	assert.True(t, ok)
	assert.Equal(t, "2024-06-03", ref)

	_, ok = entry.ReferenceDateFor("2025-02-12")
	assert.False(t, ok)
}

func TestParse_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"whitespace", "   "},
		{"garbage", "not json at all"},
		{"truncated object", `{"W07 2025": ["W23`},
		{"top-level array", `["W23 2024"]`},
		{"top-level null", "null"},
		{"top-level number", "42"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Parse(test.raw)
			assert.Empty(t, c.TargetWeeks())
			assert.Equal(t, KindAbsent, c.Entry("W07 2025").Kind)
		})
	}
}

func TestParse_UnrecognizedEntriesAreAbsent(t *testing.T) {
	raw := `{
		"W07 2025": ["W23 2024"],
		"W08 2025": "just a string",
		"W09 2025": {"type": "something_else", "mapping": {"2025-02-24": "2024-06-17"}},
		"W10 2025": [],
		"W11 2025": ["not a week label"]
	}`

	c := Parse(raw)

	assert.Equal(t, KindWeekList, c.Entry("W07 2025").Kind)
	assert.Equal(t, KindAbsent, c.Entry("W08 2025").Kind)
	assert.Equal(t, KindAbsent, c.Entry("W09 2025").Kind)
	assert.Equal(t, KindAbsent, c.Entry("W10 2025").Kind)
	assert.Equal(t, KindAbsent, c.Entry("W11 2025").Kind)
}

func TestParse_DayMappingDropsInvalidPairs(t *testing.T) {
	raw := `{"W07 2025": {"type": "comparable_por_dia", "mapping": {
		"2025-02-10": "2024-06-03",
		"not a date": "2024-06-04",
		"2025-02-12": "also not a date"
	}}}`

	entry := Parse(raw).Entry("W07 2025")

	require.Equal(t, KindDayMapping, entry.Kind)
	assert.Len(t, entry.Mapping, 1)
	assert.Equal(t, "2024-06-03", entry.Mapping["2025-02-10"])
}

func TestMerge_PreservesForeignKeys(t *testing.T) {
	raw := `{"W07 2025": ["W23 2024"], "notes": {"author": "ops"}, "W08 2025": "opaque"}`

	merged, err := Merge(raw, "W09 2025", Entry{Kind: KindWeekList, Weeks: []string{"W30 2024"}})
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(merged), &doc))
	assert.Len(t, doc, 4)
	assert.JSONEq(t, `["W23 2024"]`, string(doc["W07 2025"]))
	assert.JSONEq(t, `{"author": "ops"}`, string(doc["notes"]))
	assert.JSONEq(t, `"opaque"`, string(doc["W08 2025"]))
	assert.JSONEq(t, `["W30 2024"]`, string(doc["W09 2025"]))
}

func TestMerge_Idempotent(t *testing.T) {
	entry := Entry{Kind: KindWeekList, Weeks: []string{"W23 2024", "W30 2024"}}

	once, err := Merge(`{"W01 2025": ["W01 2024"]}`, "W07 2025", entry)
	require.NoError(t, err)
	twice, err := Merge(once, "W07 2025", entry)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestMerge_ReplacesExistingEntry(t *testing.T) {
	raw := `{"W07 2025": ["W23 2024"]}`

	merged, err := Merge(raw, "W07 2025", Entry{
		Kind:    KindDayMapping,
		Mapping: map[string]string{"2025-02-10": "2024-06-03"},
	})
	require.NoError(t, err)

	entry := Parse(merged).Entry("W07 2025")
	assert.Equal(t, KindDayMapping, entry.Kind)
}

func TestMerge_MalformedBlobStartsFresh(t *testing.T) {
	merged, err := Merge("corrupted {", "W07 2025", Entry{Kind: KindWeekList, Weeks: []string{"W23 2024"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"W07 2025": ["W23 2024"]}`, merged)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		targetWeek string
		entry      Entry
		wantErr    error
	}{
		{
			name:       "valid week list",
			targetWeek: "W07 2025",
			entry:      Entry{Kind: KindWeekList, Weeks: []string{"W23 2024"}},
		},
		{
			name:       "valid day mapping",
			targetWeek: "W07 2025",
			entry:      Entry{Kind: KindDayMapping, Mapping: map[string]string{"2025-02-10": "2024-06-03"}},
		},
		{
			name:       "malformed target week",
			targetWeek: "week seven",
			entry:      Entry{Kind: KindWeekList, Weeks: []string{"W23 2024"}},
			wantErr:    apperrors.ErrMalformedWeekLabel,
		},
		{
			name:       "empty week list",
			targetWeek: "W07 2025",
			entry:      Entry{Kind: KindWeekList},
			wantErr:    apperrors.ErrEmptyReferenceWeeks,
		},
		{
			name:       "malformed reference week",
			targetWeek: "W07 2025",
			entry:      Entry{Kind: KindWeekList, Weeks: []string{"W23-2024"}},
			wantErr:    apperrors.ErrMalformedWeekLabel,
		},
		{
			name:       "empty day mapping",
			targetWeek: "W07 2025",
			entry:      Entry{Kind: KindDayMapping, Mapping: map[string]string{}},
			wantErr:    apperrors.ErrEmptyDayMapping,
		},
		{
			name:       "absent entry",
			targetWeek: "W07 2025",
			entry:      Entry{},
			wantErr:    apperrors.ErrNotConfigured,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Validate(test.targetWeek, test.entry)
			if test.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, test.wantErr)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "W23 2024, W30 2024", Entry{Kind: KindWeekList, Weeks: []string{"W23 2024", "W30 2024"}}.Describe())
	assert.Equal(t, DAY_MAPPING_TYPE, Entry{Kind: KindDayMapping}.Describe())
	assert.Equal(t, "", Entry{}.Describe())
}
