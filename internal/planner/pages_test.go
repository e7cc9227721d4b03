package planner

import (
	"testing"

	"github.com/fentz26/daybook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageAdd(t *testing.T) {
	h := newHarness(t)
	s := h.state

	home, err := s.Pages.Add("Home", models.PageColors[0])
	require.NoError(t, err)
	work, err := s.Pages.Add("Work", "hsl(200, 50%, 50%)")
	require.NoError(t, err)

	assert.Equal(t, 0, home.Order)
	assert.Equal(t, 1, work.Order)
	assert.Equal(t, []string{"Home", "Work"}, pageNames(s.Pages.List()))
}

func TestPageDelete_OrphansAndKeepsTasks(t *testing.T) {
	h := newHarness(t)
	s := h.state

	page, err := s.Pages.Add("Errands", "#10B981")
	require.NoError(t, err)
	other, err := s.Pages.Add("Work", "#6366F1")
	require.NoError(t, err)

	for i, pageID := range []string{page.ID, page.ID, other.ID, ""} {
		d := draft("t", models.PriorityLow)
		d.PageID = pageID
		_, err := s.Tasks.Add(d)
		require.NoError(t, err, "task %d", i)
	}

	require.NoError(t, s.Pages.Delete(page.ID))

	tasks := s.Tasks.List()
	assert.Len(t, tasks, 4, "no task is removed")
	filed := 0
	for _, task := range tasks {
		assert.NotEqual(t, page.ID, task.PageID)
		if task.PageID == other.ID {
			filed++
		}
	}
	assert.Equal(t, 1, filed)
	assert.Len(t, s.View(Filter{PageID: Unfiled}), 3)

	assert.ErrorIs(t, s.Pages.Delete(page.ID), ErrNotFound)
}

func TestPageDanglingReferenceCountsAsUnfiled(t *testing.T) {
	h := newHarness(t)
	s := h.state

	d := draft("stale", models.PriorityLow)
	d.PageID = "deleted-elsewhere"
	_, err := s.Tasks.Add(d)
	require.NoError(t, err)

	_, ok := s.Pages.Resolve("deleted-elsewhere")
	assert.False(t, ok)
	assert.Len(t, s.View(Filter{PageID: Unfiled}), 1)
}

func TestPageReorder_Dense(t *testing.T) {
	h := newHarness(t)
	s := h.state

	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		p, err := s.Pages.Add(name, "#000000")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	require.NoError(t, s.Pages.Delete(ids[1]))

	require.NoError(t, s.Pages.Reorder([]string{ids[3], ids[0]}))

	pages := s.Pages.List()
	assert.Equal(t, []string{"d", "a", "c"}, pageNames(pages))
	for i, p := range pages {
		assert.Equal(t, i, p.Order)
	}
}

func TestPageUpdate(t *testing.T) {
	h := newHarness(t)
	s := h.state

	p, err := s.Pages.Add("Home", "#000000")
	require.NoError(t, err)

	p.Name = "House"
	p.AccentColor = "#FFFFFF"
	p.Order = 99
	got, err := s.Pages.Update(*p)
	require.NoError(t, err)
	assert.Equal(t, "House", got.Name)
	assert.Equal(t, 0, got.Order, "order only changes through Reorder")

	_, err = s.Pages.Update(models.TaskPage{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func pageNames(pages []models.TaskPage) []string {
	var names []string
	for _, p := range pages {
		names = append(names, p.Name)
	}
	return names
}
