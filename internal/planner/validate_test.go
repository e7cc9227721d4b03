package planner

import (
	"testing"

	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDraft(t *testing.T) {
	ok := models.TaskDraft{Title: "Write report", Category: models.CategoryWork, Priority: models.PriorityHigh, DueTime: "09:30"}
	require.NoError(t, Validate(ok))

	tests := []struct {
		name   string
		mutate func(d *models.TaskDraft)
		want   string
	}{
		{"empty title", func(d *models.TaskDraft) { d.Title = "" }, "title is required"},
		{"bad category", func(d *models.TaskDraft) { d.Category = "chores" }, "category must be one of"},
		{"bad priority", func(d *models.TaskDraft) { d.Priority = "urgent" }, "priority must be one of"},
		{"bad time", func(d *models.TaskDraft) { d.DueTime = "25:00" }, "dueTime must be a 24-hour HH:MM time"},
		{"bad repeat", func(d *models.TaskDraft) { d.Repeat = "yearly" }, "repeat must be one of"},
		{"empty subtask", func(d *models.TaskDraft) { d.Subtasks = []models.Subtask{{}} }, "title is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ok
			tt.mutate(&d)
			err := Validate(d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, Validate(models.TaskPage{Name: "Home", AccentColor: "#A855F7"}))
	assert.NoError(t, Validate(models.TaskPage{Name: "Home", AccentColor: "hsl(270,91%,65%)"}))
	assert.ErrorIs(t, Validate(models.TaskPage{Name: "Home", AccentColor: "purple"}), ErrInvalid)
	assert.ErrorIs(t, Validate(models.TaskPage{AccentColor: "#000"}), ErrInvalid)
}

func TestValidateEvent(t *testing.T) {
	day := models.Date{Year: 2024, Month: 5, Day: 15}

	assert.NoError(t, ValidateEvent(models.CalendarEvent{Title: "Trip", Date: day, AllDay: true}))
	assert.NoError(t, ValidateEvent(models.CalendarEvent{Title: "Call", Date: day, StartTime: "9:05", EndTime: "10:00"}))

	err := ValidateEvent(models.CalendarEvent{Title: "Call", Date: day})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "startTime")

	err = ValidateEvent(models.CalendarEvent{Title: "Call", StartTime: "09:00"})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "date is required")

	err = ValidateEvent(models.CalendarEvent{Title: "Call", Date: day, StartTime: "11:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalid)

	err = ValidateEvent(models.CalendarEvent{Title: "Call", Date: day, StartTime: "11:00", Reminder: -5})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateJournal(t *testing.T) {
	assert.NoError(t, Validate(models.JournalEntry{Text: "hello"}))
	assert.ErrorIs(t, Validate(models.JournalEntry{}), ErrInvalid)
	assert.ErrorIs(t, Validate(models.JournalEntry{Text: "x", Mood: "meh"}), ErrInvalid)
}
