package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/daybook/internal/models"
)

// Suggestions provides autocomplete for the command bar
type Suggestions struct {
	items       []SuggestionItem
	filtered    []SuggestionItem
	selectedIdx int
	visible     bool
	prefix      string // "", "@", "#" or "!"
	word        string
}

// SuggestionItem represents a single autocomplete suggestion
type SuggestionItem struct {
	Text        string
	Description string
	Type        string // "command", "page", "category", "priority"
}

var commandSuggestions = []SuggestionItem{
	{Text: "add", Description: "Create a task", Type: "command"},
	{Text: "rename", Description: "Rename the selected task", Type: "command"},
	{Text: "note", Description: "Set notes on the selected task", Type: "command"},
	{Text: "sub", Description: "Add a subtask to the selected task", Type: "command"},
	{Text: "mood", Description: "Record today's mood", Type: "command"},
	{Text: "page", Description: "Create a page", Type: "command"},
	{Text: "rmpage", Description: "Delete a page, keeping its tasks", Type: "command"},
	{Text: "journal", Description: "Write a journal entry", Type: "command"},
	{Text: "streak", Description: "Show streak and points", Type: "command"},
	{Text: "quit", Description: "Leave daybook", Type: "command"},
}

func categorySuggestions() []SuggestionItem {
	out := make([]SuggestionItem, len(models.Categories))
	for i, c := range models.Categories {
		out[i] = SuggestionItem{Text: "#" + string(c), Description: c.Label(), Type: "category"}
	}
	return out
}

func prioritySuggestions() []SuggestionItem {
	out := make([]SuggestionItem, len(models.Priorities))
	for i, p := range models.Priorities {
		out[i] = SuggestionItem{Text: "!" + string(p), Description: fmt.Sprintf("+%d points", p.Points()), Type: "priority"}
	}
	return out
}

// NewSuggestions creates a new suggestions handler
func NewSuggestions() *Suggestions {
	return &Suggestions{items: commandSuggestions}
}

// Update updates suggestions for the word under the cursor. The first
// word completes commands; later words complete @pages, #categories and
// !priorities.
func (s *Suggestions) Update(input string) {
	s.visible = false
	s.filtered = nil
	s.prefix = ""
	if input == "" || strings.HasSuffix(input, " ") {
		return
	}

	fields := strings.Fields(input)
	word := fields[len(fields)-1]
	s.word = word

	if len(fields) == 1 {
		s.items = commandSuggestions
		s.visible = true
		s.filter(word)
		return
	}

	switch word[0] {
	case '@':
		s.prefix = "@"
		s.items = nil // filled by SetPages
	case '#':
		s.prefix = "#"
		s.items = categorySuggestions()
	case '!':
		s.prefix = "!"
		s.items = prioritySuggestions()
	default:
		return
	}
	s.visible = true
	s.filter(word)
}

// SetPages offers page names while an @word is being typed.
func (s *Suggestions) SetPages(pages []models.TaskPage) {
	if s.prefix != "@" {
		return
	}
	s.items = make([]SuggestionItem, len(pages))
	for i, p := range pages {
		s.items[i] = SuggestionItem{
			Text:        "@" + strings.ReplaceAll(p.Name, " ", "_"),
			Description: "File under this page",
			Type:        "page",
		}
	}
	s.filter(s.word)
}

func (s *Suggestions) filter(query string) {
	query = strings.ToLower(query)
	s.filtered = []SuggestionItem{}
	for _, item := range s.items {
		if strings.HasPrefix(strings.ToLower(item.Text), query) {
			s.filtered = append(s.filtered, item)
		}
	}
	s.selectedIdx = 0
}

// Next moves to the next suggestion
func (s *Suggestions) Next() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx = (s.selectedIdx + 1) % len(s.filtered)
}

// Prev moves to the previous suggestion
func (s *Suggestions) Prev() {
	if len(s.filtered) == 0 {
		return
	}
	s.selectedIdx--
	if s.selectedIdx < 0 {
		s.selectedIdx = len(s.filtered) - 1
	}
}

// Selected returns the currently selected suggestion
func (s *Suggestions) Selected() *SuggestionItem {
	if !s.IsVisible() || s.selectedIdx >= len(s.filtered) {
		return nil
	}
	// A fully typed word needs no completion.
	if s.filtered[s.selectedIdx].Text == s.word {
		return nil
	}
	return &s.filtered[s.selectedIdx]
}

// IsVisible returns whether suggestions are currently visible
func (s *Suggestions) IsVisible() bool {
	return s.visible && len(s.filtered) > 0
}

// Render renders the suggestions dropdown
func (s *Suggestions) Render(width int) string {
	if !s.IsVisible() {
		return ""
	}

	var b strings.Builder

	suggestionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondaryColor).
		Padding(0, 1).
		Width(max(width-4, 20))

	itemStyle := lipgloss.NewStyle().Foreground(fgColor)
	descStyle := lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	var header string
	switch s.prefix {
	case "":
		header = "Commands"
	case "@":
		header = "Pages"
	case "#":
		header = "Categories"
	case "!":
		header = "Priorities"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(header))
	b.WriteString("\n")

	maxVisible := 5
	for i, item := range s.filtered {
		if i >= maxVisible {
			more := len(s.filtered) - maxVisible
			b.WriteString(descStyle.Render(fmt.Sprintf("  ... and %d more", more)))
			break
		}

		var line string
		if i == s.selectedIdx {
			line = selectedStyle.Render("▶ "+item.Text) + " " + descStyle.Render(item.Description)
		} else {
			line = itemStyle.Render("  "+item.Text) + " " + descStyle.Render(item.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return suggestionStyle.Render(b.String())
}
