package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
)

var (
	cmdBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// CmdBarModel manages the command input bar
type CmdBarModel struct {
	input       textinput.Model
	focused     bool
	suggestions *Suggestions
}

// NewCmdBarModel creates a new command bar
func NewCmdBarModel() *CmdBarModel {
	ti := textinput.New()
	ti.Placeholder = "add <title> !high #work due:today @page | mood good | search <text>"
	ti.CharLimit = 256
	ti.Width = 80
	return &CmdBarModel{
		input:       ti,
		suggestions: NewSuggestions(),
	}
}

// Focused reports whether the bar is taking input.
func (m *CmdBarModel) Focused() bool {
	return m.focused
}

// Focus focuses the command bar
func (m *CmdBarModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur unfocuses the command bar
func (m *CmdBarModel) Blur() {
	m.focused = false
	m.input.Blur()
	m.input.SetValue("")
	m.suggestions.Update("")
}

// Submit returns the current input and blurs
func (m *CmdBarModel) Submit() string {
	val := m.input.Value()
	m.Blur()
	return val
}

// Update handles key presses while focused. It reports submitted input
// through the returned string.
func (m *CmdBarModel) Update(msg tea.Msg, pages []models.TaskPage) (string, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Blur()
			return "", nil
		case "enter":
			if sel := m.suggestions.Selected(); sel != nil {
				m.accept(sel)
				return "", nil
			}
			return m.Submit(), nil
		case "tab":
			if sel := m.suggestions.Selected(); sel != nil {
				m.accept(sel)
			}
			return "", nil
		case "up":
			m.suggestions.Prev()
			return "", nil
		case "down":
			m.suggestions.Next()
			return "", nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggestions.Update(m.input.Value())
	m.suggestions.SetPages(pages)
	return "", cmd
}

// accept replaces the word being completed with the suggestion.
func (m *CmdBarModel) accept(sel *SuggestionItem) {
	val := m.input.Value()
	cut := strings.LastIndex(val, " ") + 1
	m.input.SetValue(val[:cut] + sel.Text + " ")
	m.input.CursorEnd()
	m.suggestions.Update("")
}

// View renders the command bar
func (m *CmdBarModel) View(width int) string {
	if !m.focused {
		return ""
	}
	bar := cmdBarStyle.Render(promptStyle.Render(": ") + m.input.View())
	if s := m.suggestions.Render(width); s != "" {
		return s + "\n" + bar
	}
	return bar
}

// Command is the context a command bar line runs against.
type Command struct {
	State    *planner.State
	Selected string
}

// errUsage marks input that did not parse.
var errUsage = errors.New("usage")

// Execute runs one command bar line and returns the status message.
// quit is true for q, quit and exit.
func (c Command) Execute(input string) (msg string, quit bool, err error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", false, nil
	}
	verb, args := parts[0], parts[1:]
	s := c.State

	switch verb {
	case "add":
		draft, err := parseDraft(args, s)
		if err != nil {
			return "", false, err
		}
		if err := planner.Validate(draft); err != nil {
			return "", false, err
		}
		t, err := s.Tasks.Add(draft)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("✓ Added %q (+%d)", t.Title, t.Points), false, nil

	case "rename", "note", "sub":
		if c.Selected == "" {
			return "", false, errors.New("no task selected")
		}
		if len(args) == 0 {
			return "", false, fmt.Errorf("%w: %s <text>", errUsage, verb)
		}
		t, err := s.Tasks.Get(c.Selected)
		if err != nil {
			return "", false, err
		}
		text := strings.Join(args, " ")
		switch verb {
		case "rename":
			t.Title = text
		case "note":
			t.Notes = text
		case "sub":
			t.Subtasks = append(t.Subtasks, models.Subtask{Title: text})
		}
		if _, err := s.Tasks.Update(*t); err != nil {
			return "", false, err
		}
		return "✓ Task updated", false, nil

	case "mood":
		if len(args) == 0 {
			return "", false, fmt.Errorf("%w: mood <amazing|good|okay|bad|terrible> [note]", errUsage)
		}
		mood, err := models.ParseMood(args[0])
		if err != nil {
			return "", false, err
		}
		done := s.Tasks.CompletedOn(models.Today(s.Now()))
		e, err := s.Moods.Record(mood, strings.Join(args[1:], " "), done)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("%s Feeling %s today", e.Mood.Emoji(), strings.ToLower(e.Mood.Label())), false, nil

	case "page":
		if len(args) == 0 {
			return "", false, fmt.Errorf("%w: page <name> [#RRGGBB]", errUsage)
		}
		color := models.PageColors[len(s.Pages.List())%len(models.PageColors)]
		nameParts := args
		if last := args[len(args)-1]; strings.HasPrefix(last, "#") && len(args) > 1 {
			color = last
			nameParts = args[:len(args)-1]
		}
		page := models.TaskPage{Name: strings.Join(nameParts, " "), AccentColor: color}
		if err := planner.Validate(page); err != nil {
			return "", false, err
		}
		p, err := s.Pages.Add(page.Name, page.AccentColor)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("✓ Page %s created", p.Name), false, nil

	case "rmpage":
		if len(args) == 0 {
			return "", false, fmt.Errorf("%w: rmpage <name>", errUsage)
		}
		p, ok := findPage(s.Pages.List(), strings.Join(args, " "))
		if !ok {
			return "", false, fmt.Errorf("no page named %q", strings.Join(args, " "))
		}
		if err := s.Pages.Delete(p.ID); err != nil {
			return "", false, err
		}
		return fmt.Sprintf("✓ Page %s deleted, its tasks are unfiled", p.Name), false, nil

	case "journal":
		if len(args) == 0 {
			return "", false, fmt.Errorf("%w: journal <text with #tags>", errUsage)
		}
		e, err := s.Journal.Add(strings.Join(args, " "), "")
		if err != nil {
			return "", false, err
		}
		if len(e.Tags) > 0 {
			return "✓ Journal entry saved #" + strings.Join(e.Tags, " #"), false, nil
		}
		return "✓ Journal entry saved", false, nil

	case "streak":
		return fmt.Sprintf("🔥 %d day streak · %d points", s.Ledger.Streak(), s.Ledger.Total()), false, nil

	case "q", "quit", "exit":
		return "", true, nil
	}

	return "", false, fmt.Errorf("unknown command: %s", verb)
}

// parseDraft reads an add line. Words prefixed with ! set the priority,
// # the category, @ the page, and due: the due date. The remaining words
// form the title.
func parseDraft(args []string, s *planner.State) (models.TaskDraft, error) {
	draft := models.TaskDraft{
		Category: models.CategoryPersonal,
		Priority: models.PriorityMedium,
		Repeat:   models.RepeatNone,
	}
	var title []string
	for _, a := range args {
		switch {
		case strings.HasPrefix(a, "!") && len(a) > 1:
			p, err := models.ParsePriority(a[1:])
			if err != nil {
				return draft, err
			}
			draft.Priority = p
		case strings.HasPrefix(a, "#") && len(a) > 1:
			c, err := models.ParseCategory(a[1:])
			if err != nil {
				return draft, err
			}
			draft.Category = c
		case strings.HasPrefix(a, "@") && len(a) > 1:
			p, ok := findPage(s.Pages.List(), a[1:])
			if !ok {
				return draft, fmt.Errorf("no page named %q", a[1:])
			}
			draft.PageID = p.ID
		case strings.HasPrefix(a, "due:"):
			d, err := models.ParseDate(strings.TrimPrefix(a, "due:"), s.Now())
			if err != nil {
				return draft, err
			}
			draft.DueDate = d
		default:
			title = append(title, a)
		}
	}
	draft.Title = strings.Join(title, " ")
	return draft, nil
}

// findPage matches a page name case-insensitively. Spaces in the name
// may be written as underscores.
func findPage(pages []models.TaskPage, name string) (models.TaskPage, bool) {
	name = strings.ReplaceAll(name, "_", " ")
	for _, p := range pages {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.TaskPage{}, false
}
