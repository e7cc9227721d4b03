// Package models defines the core domain types for daybook.
package models

import "time"

// Task is a single to-do item.
//
// Completed and CompletedAt move together: CompletedAt is set exactly
// while Completed is true. Points is captured from the priority at
// creation and never recomputed.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     Date       `json:"dueDate"`
	DueTime     string     `json:"dueTime,omitempty"`
	Repeat      Repeat     `json:"repeat"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Points      int        `json:"points"`
	PageID      string     `json:"pageId,omitempty"`
	Subtasks    []Subtask  `json:"subtasks,omitempty"`
	Order       int        `json:"order"`
	IsFocus     bool       `json:"isFocus"`
	Marked      bool       `json:"marked"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Subtask is a checklist item inside a task. Its completion is
// independent of the parent.
type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required"`
	Completed bool   `json:"completed"`
}

// TaskDraft carries the user-supplied fields of a new task.
type TaskDraft struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description,omitempty" validate:"max=2000"`
	Notes       string    `json:"notes,omitempty"`
	Category    Category  `json:"category" validate:"required,oneof=work personal health other"`
	Priority    Priority  `json:"priority" validate:"required,oneof=high medium low"`
	DueDate     Date      `json:"dueDate"`
	DueTime     string    `json:"dueTime,omitempty" validate:"omitempty,clock"`
	Repeat      Repeat    `json:"repeat" validate:"omitempty,oneof=none daily weekly monthly"`
	PageID      string    `json:"pageId,omitempty"`
	Subtasks    []Subtask `json:"subtasks,omitempty" validate:"dive"`
}

// MoodEntry records how the user felt on a calendar day.
type MoodEntry struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Mood             Mood      `json:"mood"`
	Note             string    `json:"note,omitempty"`
	CompletedTaskIDs []string  `json:"completedTaskIds,omitempty"`
}

// TaskPage is a user-defined folder for tasks.
type TaskPage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required,max=60"`
	AccentColor string    `json:"accentColor" validate:"required,hexcolor|hsl"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CalendarEvent is an entry on the calendar.
type CalendarEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Date        Date   `json:"date" validate:"required"`
	StartTime   string `json:"startTime,omitempty" validate:"omitempty,clock"`
	EndTime     string `json:"endTime,omitempty" validate:"omitempty,clock"`
	AllDay      bool   `json:"isAllDay"`
	Location    string `json:"location,omitempty"`
	// Reminder is the lead time in minutes; zero disables it.
	Reminder int `json:"reminder,omitempty" validate:"min=0,max=10080"`
}

// JournalEntry is a free-text journal page. Tags are derived from
// #hashtags in Text when the entry is saved.
type JournalEntry struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Text string    `json:"text" validate:"required"`
	Tags []string  `json:"tags"`
	Mood Mood      `json:"mood,omitempty" validate:"omitempty,oneof=amazing good okay bad terrible"`
}

// Settings holds the boolean toggles from the settings screen.
type Settings struct {
	DarkMode      bool `json:"darkMode"`
	Notifications bool `json:"notifications"`
}

// Activity is one recorded state-mutating operation.
type Activity struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	EntityID   string    `json:"entity_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
