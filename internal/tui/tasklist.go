package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
)

var (
	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	doneStyle      = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
)

var statuses = []planner.Status{planner.StatusAll, planner.StatusPending, planner.StatusCompleted}
var statusNames = []string{"ALL", "PENDING", "DONE"}

// pageFilter is one entry of the page cycle: all tasks, unfiled tasks or
// one page.
type pageFilter struct {
	ID    string
	Name  string
	Color string
}

// pageFilters lists the page cycle for the current pages.
func pageFilters(pages []models.TaskPage) []pageFilter {
	out := []pageFilter{{Name: "All pages"}, {ID: planner.Unfiled, Name: "Unfiled"}}
	for _, p := range pages {
		out = append(out, pageFilter{ID: p.ID, Name: p.Name, Color: p.AccentColor})
	}
	return out
}

func formatPriority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return priorityHigh.Render("●")
	case models.PriorityMedium:
		return priorityMedium.Render("●")
	case models.PriorityLow:
		return priorityLow.Render("●")
	}
	return " "
}

// formatTask renders one task row without selection styling.
func formatTask(t models.Task, page *models.TaskPage) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	var b strings.Builder
	b.WriteString(check + " " + formatPriority(t.Priority) + " ")
	if t.IsFocus {
		b.WriteString("★ ")
	}
	b.WriteString(title)

	var meta []string
	if !t.DueDate.IsZero() {
		due := t.DueDate.String()
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		meta = append(meta, due)
	}
	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		meta = append(meta, fmt.Sprintf("%d/%d", done, n))
	}
	if page != nil {
		meta = append(meta, lipgloss.NewStyle().Foreground(lipgloss.Color(page.AccentColor)).Render(page.Name))
	}
	meta = append(meta, fmt.Sprintf("+%d", t.Points))
	b.WriteString("  " + helpStyle.Render(strings.Join(meta, " · ")))
	return b.String()
}

// moveWithin returns every task id in order with id swapped against its
// neighbour in view, delta places away. ok is false when the move would
// leave the view.
func moveWithin(all, view []models.Task, id string, delta int) (ids []string, ok bool) {
	pos := -1
	for i, t := range view {
		if t.ID == id {
			pos = i
			break
		}
	}
	target := pos + delta
	if pos < 0 || target < 0 || target >= len(view) {
		return nil, false
	}
	other := view[target].ID

	ids = make([]string, len(all))
	for i, t := range all {
		switch t.ID {
		case id:
			ids[i] = other
		case other:
			ids[i] = id
		default:
			ids[i] = t.ID
		}
	}
	return ids, true
}
