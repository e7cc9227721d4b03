package models

import "fmt"

// Category groups tasks by life area.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryHealth   Category = "health"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther}

// Label returns the display name.
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryPersonal:
		return "Personal"
	case CategoryHealth:
		return "Health"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// Color returns the calendar dot color. Unknown categories render as other.
func (c Category) Color() string {
	switch c {
	case CategoryWork:
		return "#A855F7"
	case CategoryPersonal:
		return "#6366F1"
	case CategoryHealth:
		return "#10B981"
	case CategoryOther:
		return "#6B7280"
	}
	return CategoryOther.Color()
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryPersonal, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (work, personal, health, other)", s)
	}
	return c, nil
}

// Priority is the urgency of a task and decides its reward.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Points returns the reward captured into a task when it is created.
func (p Priority) Points() int {
	switch p {
	case PriorityHigh:
		return 30
	case PriorityMedium:
		return 20
	case PriorityLow:
		return 10
	}
	return 0
}

// Label returns the display name.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p.Points() > 0
}

// ParsePriority parses a priority name.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q (high, medium, low)", s)
	}
	return p, nil
}

// Repeat is the stored recurrence of a task. It is never expanded into
// future occurrences.
type Repeat string

const (
	RepeatNone    Repeat = "none"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// Valid reports whether r is a known recurrence. The empty value counts as none.
func (r Repeat) Valid() bool {
	switch r {
	case "", RepeatNone, RepeatDaily, RepeatWeekly, RepeatMonthly:
		return true
	}
	return false
}

// ParseRepeat parses a recurrence name.
func ParseRepeat(s string) (Repeat, error) {
	r := Repeat(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown repeat %q (none, daily, weekly, monthly)", s)
	}
	if r == "" {
		return RepeatNone, nil
	}
	return r, nil
}

// Mood is one of five self-reported states.
type Mood string

const (
	MoodAmazing  Mood = "amazing"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

// Moods lists every mood from best to worst.
var Moods = []Mood{MoodAmazing, MoodGood, MoodOkay, MoodBad, MoodTerrible}

// Emoji returns the face shown for the mood.
func (m Mood) Emoji() string {
	switch m {
	case MoodAmazing:
		return "🤩"
	case MoodGood:
		return "😊"
	case MoodOkay:
		return "😐"
	case MoodBad:
		return "😔"
	case MoodTerrible:
		return "😢"
	}
	return "?"
}

// Label returns the display name.
func (m Mood) Label() string {
	switch m {
	case MoodAmazing:
		return "Amazing"
	case MoodGood:
		return "Good"
	case MoodOkay:
		return "Okay"
	case MoodBad:
		return "Bad"
	case MoodTerrible:
		return "Terrible"
	}
	return string(m)
}

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	return m.Emoji() != "?"
}

// ParseMood parses a mood name.
func ParseMood(s string) (Mood, error) {
	m := Mood(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mood %q (amazing, good, okay, bad, terrible)", s)
	}
	return m, nil
}

// FontSize is the text size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Valid reports whether f is a known font size.
func (f FontSize) Valid() bool {
	switch f {
	case FontSmall, FontMedium, FontLarge:
		return true
	}
	return false
}

// PageColors is the preset accent palette offered when creating a page.
var PageColors = []string{
	"#EF4444", "#F87171", "#FB7185", "#EC4899", "#F472B6", "#E879F9",
	"#A855F7", "#8B5CF6", "#6366F1", "#3B82F6", "#60A5FA", "#38BDF8",
	"#06B6D4", "#14B8A6", "#10B981", "#22C55E", "#84CC16", "#A3E635",
	"#FACC15", "#FDE047", "#FCD34D", "#FBBF24", "#F59E0B", "#F97316",
	"#78716C", "#A8A29E", "#D6D3D1", "#0F172A", "#334155", "#64748B",
}
