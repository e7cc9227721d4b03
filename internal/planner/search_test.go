package planner

import (
	"testing"

	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Buy Groceries"},
		{ID: "2", Title: "Call", Description: "ask about the GROCERY list"},
		{ID: "3", Title: "Plan", Notes: "nothing"},
		{ID: "4", Title: "Trip", Subtasks: []models.Subtask{{Title: "pack groceries bag"}}},
	}

	ids := func(ts []models.Task) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "4"}, ids(Search(tasks, "  grocer ")))
	assert.Len(t, Search(tasks, ""), 4)
	assert.Empty(t, Search(tasks, "zzz"))
}

func TestView(t *testing.T) {
	h := newHarness(t)
	s := h.state
	today := models.Today(h.clock.Now())

	page, err := s.Pages.Add("Work", "#000000")
	require.NoError(t, err)

	d := draft("report", models.PriorityHigh)
	d.PageID = page.ID
	d.DueDate = today
	report, err := s.Tasks.Add(d)
	require.NoError(t, err)

	gym := addTask(t, s, "gym", models.PriorityLow)
	_, err = s.Tasks.Complete(gym.ID)
	require.NoError(t, err)

	focus := addTask(t, s, "inbox zero", models.PriorityMedium)
	_, err = s.Tasks.ToggleFocus(focus.ID)
	require.NoError(t, err)

	assert.Len(t, s.View(Filter{}), 3)
	assert.Len(t, s.View(Filter{PageID: page.ID}), 1)
	assert.Len(t, s.View(Filter{PageID: Unfiled}), 2)
	assert.Len(t, s.View(Filter{Status: StatusPending}), 2)
	assert.Len(t, s.View(Filter{Status: StatusCompleted}), 1)
	assert.Len(t, s.View(Filter{Due: today}), 1)
	assert.Len(t, s.View(Filter{Focus: true}), 1)
	assert.Len(t, s.View(Filter{Status: StatusPending, Query: "REPORT"}), 1)

	// Sorted by Order, not by recency
	all := s.View(Filter{})
	assert.Equal(t, report.ID, all[0].ID)
}
