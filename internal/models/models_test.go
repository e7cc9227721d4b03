package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityPoints(t *testing.T) {
	assert.Equal(t, 30, PriorityHigh.Points())
	assert.Equal(t, 20, PriorityMedium.Points())
	assert.Equal(t, 10, PriorityLow.Points())
	assert.Equal(t, 0, Priority("urgent").Points())
	assert.False(t, Priority("urgent").Valid())
}

func TestEnumsAreExhaustive(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
		assert.NotEqual(t, string(c), c.Label())
		assert.NotEmpty(t, c.Color())
	}
	for _, m := range Moods {
		assert.True(t, m.Valid(), m)
		assert.NotEqual(t, "?", m.Emoji())
	}
	for _, p := range Priorities {
		assert.Positive(t, p.Points(), p)
	}
	assert.Equal(t, CategoryOther.Color(), Category("misc").Color())
}

func TestParseEnums(t *testing.T) {
	_, err := ParseCategory("chores")
	assert.Error(t, err)

	m, err := ParseMood("good")
	require.NoError(t, err)
	assert.Equal(t, MoodGood, m)

	r, err := ParseRepeat("")
	require.NoError(t, err)
	assert.Equal(t, RepeatNone, r)

	_, err = ParsePriority("HIGH")
	assert.Error(t, err)
}

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Date
	}{
		{"null", `null`, Date{}},
		{"empty string", `""`, Date{}},
		{"calendar day", `"2024-03-09"`, Date{2024, time.March, 9}},
		{"local timestamp", `"` + time.Date(2024, 3, 9, 15, 0, 0, 0, time.Local).Format(time.RFC3339) + `"`, Date{2024, time.March, 9}},
		{"epoch millis", jsonInt(time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local).UnixMilli()), Date{2024, time.March, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.want, d)
		})
	}

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"next week"`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Date{2025, time.December, 31})
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-31"`, string(b))

	b, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestDate_Arithmetic(t *testing.T) {
	d := Date{2024, time.February, 28}
	assert.Equal(t, Date{2024, time.February, 29}, d.AddDays(1))
	assert.Equal(t, Date{2024, time.March, 1}, d.AddDays(2))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.Before(d))
	assert.True(t, d.Contains(time.Date(2024, 2, 28, 23, 59, 0, 0, time.Local)))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 30, 22, 0, 0, 0, time.Local)

	d, err := ParseDate("today", now)
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.June, 30}, d)

	d, err = ParseDate("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, Date{2024, time.July, 1}, d)

	_, err = ParseDate("30/06/2024", now)
	assert.Error(t, err)
}

func TestTaskRoundTripKeepsCompletedAt(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := Task{ID: "t1", Title: "A", Priority: PriorityHigh, Points: 30, Completed: true, CompletedAt: &at}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Task
	require.NoError(t, json.Unmarshal(b, &out))
	require.NotNil(t, out.CompletedAt)
	assert.True(t, at.Equal(*out.CompletedAt))
	assert.True(t, out.DueDate.IsZero())
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
