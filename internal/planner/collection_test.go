package planner

import (
	"testing"
	"time"

	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"no tags here", []string{}},
		{"#Gym then #work and #gym again", []string{"gym", "work"}},
		{"unicode #café #日記", []string{"café", "日記"}},
		{"issue#42 counts, # alone does not", []string{"42"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.text))
		})
	}
}

func TestJournal_CRUD(t *testing.T) {
	h := newHarness(t)
	s := h.state

	e, err := s.Journal.Add("Ran 5k #health #morning", models.MoodGood)
	require.NoError(t, err)
	assert.Equal(t, []string{"health", "morning"}, e.Tags)
	assert.True(t, h.clock.Now().Equal(e.Date))

	second, err := s.Journal.Add("Quiet evening", "")
	require.NoError(t, err)
	assert.Equal(t, second.ID, s.Journal.List()[0].ID, "newest first")

	edit := *e
	edit.Text = "Ran 10k #running"
	edit.Date = time.Time{}
	got, err := s.Journal.Update(edit)
	require.NoError(t, err)
	assert.Equal(t, []string{"running"}, got.Tags)
	assert.True(t, e.Date.Equal(got.Date), "zero date keeps the stored date")

	assert.Len(t, s.Journal.Tagged("#RUNNING"), 1)
	assert.Empty(t, s.Journal.Tagged("health"))

	require.NoError(t, s.Journal.Delete(e.ID))
	_, err = s.Journal.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Journal.Delete(e.ID), ErrNotFound)

	_, err = s.Journal.Update(models.JournalEntry{ID: "missing", Text: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournal_ReturnedTagsAreCopies(t *testing.T) {
	h := newHarness(t)
	s := h.state

	e, err := s.Journal.Add("Long walk #outside", "")
	require.NoError(t, err)
	e.Tags[0] = "changed"

	list := s.Journal.List()
	list[0].Tags[0] = "changed"
	s.Journal.Tagged("outside")[0].Tags[0] = "changed"
	got, err := s.Journal.Get(e.ID)
	require.NoError(t, err)
	got.Tags[0] = "changed"

	assert.Equal(t, []string{"outside"}, s.Journal.List()[0].Tags)
	assert.Len(t, s.Journal.Tagged("outside"), 1)
}

func TestEvents_CRUDAndDay(t *testing.T) {
	h := newHarness(t)
	s := h.state
	day := models.Today(h.clock.Now())

	late, err := s.Events.Add(models.CalendarEvent{Title: "Dinner", Date: day, StartTime: "19:00"})
	require.NoError(t, err)
	_, err = s.Events.Add(models.CalendarEvent{Title: "Holiday", Date: day, AllDay: true, StartTime: "08:00"})
	require.NoError(t, err)
	_, err = s.Events.Add(models.CalendarEvent{Title: "Standup", Date: day, StartTime: "09:30"})
	require.NoError(t, err)
	_, err = s.Events.Add(models.CalendarEvent{Title: "Tomorrow", Date: day.AddDays(1), StartTime: "09:00"})
	require.NoError(t, err)

	on := s.Events.On(day)
	require.Len(t, on, 3)
	assert.Equal(t, []string{"Holiday", "Standup", "Dinner"}, []string{on[0].Title, on[1].Title, on[2].Title})
	assert.Empty(t, on[0].StartTime, "all-day events drop their times")

	late.Location = "Home"
	got, err := s.Events.Update(*late)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Location)

	require.NoError(t, s.Events.Delete(late.ID))
	assert.Len(t, s.Events.On(day), 2)
	assert.Len(t, s.Events.List(), 3)

	_, err = s.Events.Update(models.CalendarEvent{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEvents_DueReminders(t *testing.T) {
	h := newHarness(t) // 10:00 local
	s := h.state
	day := models.Today(h.clock.Now())

	add := func(title, start string, reminder int) {
		_, err := s.Events.Add(models.CalendarEvent{Title: title, Date: day, StartTime: start, Reminder: reminder})
		require.NoError(t, err)
	}
	add("soon", "10:10", 15)
	add("later", "11:00", 15)
	add("started", "09:59", 15)
	add("silent", "10:05", 0)

	due := s.Events.DueReminders(h.clock.Now())
	require.Len(t, due, 1)
	assert.Equal(t, "soon", due[0].Title)

	start, ok := EventStart(due[0])
	require.True(t, ok)
	assert.Equal(t, 10, start.Hour())
	assert.Equal(t, 10, start.Minute())
}

func TestTasksDueOn(t *testing.T) {
	h := newHarness(t)
	s := h.state
	today := models.Today(h.clock.Now())

	d := draft("due", models.PriorityLow)
	d.DueDate = today
	_, err := s.Tasks.Add(d)
	require.NoError(t, err)
	addTask(t, s, "undated", models.PriorityLow)

	assert.Len(t, s.Tasks.DueOn(today), 1)
	assert.Empty(t, s.Tasks.DueOn(today.AddDays(1)))
}
