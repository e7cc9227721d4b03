package main

import (
	"testing"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/fentz26/daybook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToTop(t *testing.T) {
	state := planner.Open(store.NewMemory())
	ids := map[string]string{}
	for _, title := range []string{"W", "X", "Y", "Z"} {
		task, err := state.Tasks.Add(models.TaskDraft{Title: title, Category: models.CategoryWork, Priority: models.PriorityLow})
		require.NoError(t, err)
		ids[title] = task.ID
	}

	require.NoError(t, moveToTop(state, []string{ids["Z"], ids["Y"]}))

	var titles []string
	for i, task := range state.View(planner.Filter{}) {
		titles = append(titles, task.Title)
		assert.Equal(t, i, task.Order, "orders are dense after a move")
	}
	assert.Equal(t, []string{"Z", "Y", "W", "X"}, titles)
}
