// Package tui provides the interactive terminal UI for daybook.
package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
)

var (
	// Colors
	primaryColor   = lipgloss.Color(planner.DefaultTheme)
	secondaryColor = lipgloss.Color("#6366F1")
	successColor   = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	fgColor        = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle     lipgloss.Style
	selectedStyle  lipgloss.Style
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	toastStyle   = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
)

func init() {
	applyTheme(planner.DefaultTheme)
}

// applyTheme rebuilds the accent styles around color.
func applyTheme(color string) {
	primaryColor = lipgloss.Color(color)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor).
		Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
		Background(primaryColor).
		Foreground(fgColor).
		Bold(true).
		Padding(0, 2)
}

// Inbox carries planner signals into the UI. Pass Send to
// planner.WithSignals before creating the App.
type Inbox chan planner.Signal

// NewInbox creates a buffered inbox.
func NewInbox() Inbox {
	return make(Inbox, 32)
}

// Send queues sig, dropping it when the UI has fallen behind.
func (in Inbox) Send(sig planner.Signal) {
	select {
	case in <- sig:
	default:
	}
}

func (in Inbox) wait() tea.Cmd {
	return func() tea.Msg {
		return signalMsg(<-in)
	}
}

type signalMsg planner.Signal

// App is the main TUI application model.
type App struct {
	state  *planner.State
	inbox  Inbox
	cmdbar *CmdBarModel

	tasks       []models.Task
	pages       []models.TaskPage
	selectedIdx int
	width       int
	height      int

	focusView bool
	statusIdx int
	pageIdx   int
	query     string

	message string
	isError bool
	toast   string
}

// New creates a new TUI application over state. inbox must be the one
// whose Send was registered with planner.WithSignals.
func New(state *planner.State, inbox Inbox) *App {
	applyTheme(state.Prefs.Theme())
	a := &App{
		state:  state,
		inbox:  inbox,
		cmdbar: NewCmdBarModel(),
		width:  80,
		height: 24,
	}
	a.refresh()
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return a.inbox.wait()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case signalMsg:
		a.handleSignal(planner.Signal(msg))
		a.refresh()
		return a, a.inbox.wait()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.cmdbar.Focused() {
			line, cmd := a.cmdbar.Update(msg, a.pages)
			if line != "" {
				return a, a.execute(line)
			}
			return a, cmd
		}
		return a, a.handleKey(msg.String())
	}
	return a, nil
}

func (a *App) handleKey(key string) tea.Cmd {
	switch key {
	case "q":
		return tea.Quit

	case "up", "k":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}

	case "down", "j":
		if a.selectedIdx < len(a.tasks)-1 {
			a.selectedIdx++
		}

	case ":":
		return a.cmdbar.Focus()

	case "a":
		cmd := a.cmdbar.Focus()
		a.cmdbar.input.SetValue("add ")
		a.cmdbar.input.CursorEnd()
		return cmd

	case "/":
		cmd := a.cmdbar.Focus()
		a.cmdbar.input.SetValue("search ")
		a.cmdbar.input.CursorEnd()
		return cmd

	case "esc":
		a.query = ""
		a.focusView = false

	case "x", " ":
		if t := a.selected(); t != nil {
			a.report(a.state.Tasks.Complete(t.ID))
		}

	case "f":
		if t := a.selected(); t != nil {
			a.report(a.state.Tasks.ToggleFocus(t.ID))
		}

	case "t":
		if t := a.selected(); t != nil {
			for _, st := range t.Subtasks {
				if !st.Completed {
					a.report(a.state.Tasks.ToggleSubtask(t.ID, st.ID))
					break
				}
			}
		}

	case "d":
		if t := a.selected(); t != nil {
			a.report(a.state.Tasks.Delete(t.ID))
		}

	case "u":
		t, err := a.state.Undo.Restore()
		if err == nil || errors.Is(err, planner.ErrPersist) {
			a.toast = ""
		}
		if err == nil {
			a.setMessage(fmt.Sprintf("✓ Restored %q", t.Title), false)
		} else {
			a.setMessage(describeErr(err), true)
		}

	case "c":
		if t := a.selected(); t != nil {
			a.report(a.state.Tasks.Duplicate(t.ID))
		}

	case "K", "J":
		if t := a.selected(); t != nil {
			delta := 1
			if key == "K" {
				delta = -1
			}
			all := a.state.View(planner.Filter{})
			if ids, ok := moveWithin(all, a.tasks, t.ID, delta); ok {
				if err := a.state.Tasks.Reorder(ids); err != nil {
					a.setMessage(describeErr(err), true)
				}
				a.selectedIdx += delta
			}
		}

	case "s":
		a.statusIdx = (a.statusIdx + 1) % len(statuses)

	case "p":
		a.pageIdx = (a.pageIdx + 1) % len(pageFilters(a.pages))

	case "F":
		a.focusView = !a.focusView
	}

	a.refresh()
	return nil
}

func (a *App) execute(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == "search" {
		a.query = strings.Join(fields[1:], " ")
		a.selectedIdx = 0
		a.refresh()
		return nil
	}

	msg, quit, err := Command{State: a.state, Selected: a.selectedID()}.Execute(line)
	if quit {
		return tea.Quit
	}
	if err != nil {
		a.setMessage(describeErr(err), true)
	} else if msg != "" {
		a.setMessage(msg, false)
	}
	a.refresh()
	return nil
}

func (a *App) handleSignal(sig planner.Signal) {
	switch sig.Kind {
	case planner.SignalPointsEarned:
		if sig.Points >= 0 {
			a.setMessage(fmt.Sprintf("🎉 +%d points", sig.Points), false)
		} else {
			a.setMessage(fmt.Sprintf("%d points", sig.Points), false)
		}
	case planner.SignalTaskDeleted:
		a.toast = fmt.Sprintf("Deleted %q · press u to undo", sig.Task.Title)
	case planner.SignalUndoExpired:
		a.toast = ""
	case planner.SignalFocusCapacityReached:
		a.setMessage(fmt.Sprintf("Focus is full (%d/%d). Finish or unfocus a task first.", a.state.FocusLimit(), a.state.FocusLimit()), true)
	}
}

// report shows the error of a task operation, if any.
func (a *App) report(_ *models.Task, err error) {
	if err != nil && !errors.Is(err, planner.ErrFocusCapacity) {
		a.setMessage(describeErr(err), true)
	}
}

func (a *App) setMessage(msg string, isError bool) {
	a.message = msg
	a.isError = isError
}

func describeErr(err error) string {
	switch {
	case errors.Is(err, planner.ErrPersist):
		return "Changed, but not saved: " + err.Error()
	case errors.Is(err, planner.ErrNothingToUndo):
		return "Nothing to undo"
	case errors.Is(err, planner.ErrUndoExpired):
		return "Too late to undo"
	}
	return "Error: " + err.Error()
}

// refresh reloads the visible tasks. A page filter whose page has been
// deleted falls back to all pages.
func (a *App) refresh() {
	a.pages = a.state.Pages.List()
	filters := pageFilters(a.pages)
	if a.pageIdx >= len(filters) {
		a.pageIdx = 0
	}
	page := a.currentPage()
	if page.ID != "" && page.ID != planner.Unfiled {
		if _, ok := a.state.Pages.Resolve(page.ID); !ok {
			a.pageIdx = 0
			page = filters[0]
		}
	}

	a.tasks = a.state.View(planner.Filter{
		PageID: page.ID,
		Status: statuses[a.statusIdx],
		Focus:  a.focusView,
		Query:  a.query,
	})
	if a.selectedIdx >= len(a.tasks) {
		a.selectedIdx = len(a.tasks) - 1
	}
	if a.selectedIdx < 0 {
		a.selectedIdx = 0
	}
}

func (a *App) currentPage() pageFilter {
	filters := pageFilters(a.pages)
	if a.pageIdx < len(filters) {
		return filters[a.pageIdx]
	}
	return filters[0]
}

func (a *App) selected() *models.Task {
	if a.selectedIdx < 0 || a.selectedIdx >= len(a.tasks) {
		return nil
	}
	t := a.tasks[a.selectedIdx]
	return &t
}

func (a *App) selectedID() string {
	if t := a.selected(); t != nil {
		return t.ID
	}
	return ""
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	// Header
	header := titleStyle.Render("daybook")
	stats := fmt.Sprintf("🔥 %d  ⭐ %d", a.state.Ledger.Streak(), a.state.Ledger.Total())
	if mood, ok := a.state.Moods.Today(); ok {
		stats += "  " + mood.Mood.Emoji()
	}
	b.WriteString(header + "  " + helpStyle.Render(stats) + "\n")

	// Filters
	page := a.currentPage()
	pageName := page.Name
	if page.Color != "" {
		pageName = lipgloss.NewStyle().Foreground(lipgloss.Color(page.Color)).Render(page.Name)
	}
	bar := fmt.Sprintf("%s · %s", pageName, statusNames[a.statusIdx])
	if a.focusView {
		bar += fmt.Sprintf(" · FOCUS %d/%d", a.state.FocusLimit()-a.state.Tasks.FocusSlotsLeft(), a.state.FocusLimit())
	}
	if a.query != "" {
		bar += fmt.Sprintf(" · search %q", a.query)
	}
	b.WriteString(statusBarStyle.Render(bar) + "\n\n")

	// Tasks
	listHeight := a.height - 9
	if listHeight < 3 {
		listHeight = 3
	}
	b.WriteString(a.renderTaskList(listHeight))
	b.WriteString("\n")

	if a.toast != "" {
		b.WriteString(toastStyle.Render(a.toast) + "\n")
	}
	if a.message != "" {
		if a.isError {
			b.WriteString(errorStyle.Render(a.message) + "\n")
		} else {
			b.WriteString(successStyle.Render(a.message) + "\n")
		}
	}

	if a.cmdbar.Focused() {
		b.WriteString(a.cmdbar.View(a.width))
	} else {
		b.WriteString(helpStyle.Render("a add · x done · f focus · d delete · u undo · c copy · K/J move · p page · s status · F focus view · / search · : command · q quit"))
	}
	return b.String()
}

func (a *App) renderTaskList(height int) string {
	if len(a.tasks) == 0 {
		if a.focusView {
			return helpStyle.Render("  No focus tasks. Press f on a task to focus it.") + "\n"
		}
		return helpStyle.Render("  No tasks. Press a to add one.") + "\n"
	}

	start := 0
	if a.selectedIdx >= height {
		start = a.selectedIdx - height + 1
	}
	end := start + height
	if end > len(a.tasks) {
		end = len(a.tasks)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		t := a.tasks[i]
		var page *models.TaskPage
		if p, ok := a.state.Pages.Resolve(t.PageID); ok {
			page = p
		}
		row := formatTask(t, page)
		if i == a.selectedIdx {
			b.WriteString(selectedStyle.Render(row))
		} else {
			b.WriteString(taskItemStyle.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}
