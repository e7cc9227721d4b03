package planner

import (
	"sort"
	"strings"

	"github.com/fentz26/daybook/internal/models"
)

// Search returns the tasks whose title, description, notes or any
// subtask title contains query, ignoring case. A blank query matches
// every task.
func Search(tasks []models.Task, query string) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tasks
	}

	var out []models.Task
	for _, t := range tasks {
		if matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t models.Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Notes), q) {
		return true
	}
	for _, st := range t.Subtasks {
		if strings.Contains(strings.ToLower(st.Title), q) {
			return true
		}
	}
	return false
}

// Status narrows a view by completion.
type Status string

const (
	StatusAll       Status = ""
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Unfiled selects tasks without a live page in Filter.PageID.
const Unfiled = "-"

// Filter describes a task view. Zero fields do not narrow.
type Filter struct {
	// PageID keeps tasks on one page. Unfiled keeps tasks whose page is
	// unset or no longer exists.
	PageID   string
	Status   Status
	Due      models.Date
	Focus    bool
	Category models.Category
	Query    string
}

// View returns the tasks matching f, sorted by Order with ties kept in
// collection order.
func (s *State) View(f Filter) []models.Task {
	s.lock()
	defer s.unlock()

	var out []models.Task
	for _, t := range s.Tasks.items {
		if !s.keep(t, f) {
			continue
		}
		out = append(out, cloneTask(t))
	}
	sortByOrder(out)
	return Search(out, f.Query)
}

// keep applies every field of f except Query. Callers hold the lock.
func (s *State) keep(t models.Task, f Filter) bool {
	switch f.PageID {
	case "":
	case Unfiled:
		if t.PageID != "" && s.Pages.exists(t.PageID) {
			return false
		}
	default:
		if t.PageID != f.PageID {
			return false
		}
	}
	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if !f.Due.IsZero() && t.DueDate != f.Due {
		return false
	}
	if f.Focus && !(t.IsFocus && !t.Completed) {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	return true
}

func sortByOrder(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Order < tasks[j].Order })
}
