// Package planner is daybook's state core: tasks with points and focus,
// daily moods, pages, calendar events and journal entries, each held in
// memory and written through to a store.Backend after every mutation.
//
// Every mutating call returns an error. A missing id yields ErrNotFound
// and a full focus slot yields ErrFocusCapacity; in both cases nothing
// changes. A failed write yields a *PersistError after the in-memory
// change has been applied.
package planner

import (
	"log"
	"sync"
	"time"

	"github.com/fentz26/daybook/internal/audit"
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
	"github.com/google/uuid"
)

// Storage keys, one JSON document each.
const (
	KeyTasks           = "tasks"
	KeyMoods           = "moods"
	KeyJournal         = "journal"
	KeyPages           = "pages"
	KeyEvents          = "events"
	KeyPoints          = "points"
	KeyStreak          = "streak"
	KeySettings        = "settings"
	KeyLanguage        = "language"
	KeyTheme           = "theme"
	KeyFontSize        = "fontSize"
	KeyReminderDefault = "reminderDefault"
)

const (
	DefaultUndoWindow = 5 * time.Second
	DefaultFocusLimit = 3
)

// Clock reads wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// NewID returns a random UUID string.
func NewID() string {
	return uuid.New().String()
}

// SignalKind names an output signal for the presentation layer.
type SignalKind string

const (
	SignalPointsEarned         SignalKind = "points_earned"
	SignalTaskDeleted          SignalKind = "task_deleted"
	SignalFocusCapacityReached SignalKind = "focus_capacity_reached"
	SignalUndoExpired          SignalKind = "undo_expired"
)

// Signal is emitted after the operation that caused it has released the
// state lock, so handlers may call back into the State.
type Signal struct {
	Kind   SignalKind
	Points int
	Task   models.Task
}

// Option configures a State.
type Option func(*State)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *State) { s.clock = c }
}

// WithIDs replaces the id generator.
func WithIDs(gen func() string) Option {
	return func(s *State) { s.newID = gen }
}

// WithUndoWindow sets how long a deleted task stays restorable.
func WithUndoWindow(d time.Duration) Option {
	return func(s *State) {
		if d > 0 {
			s.undoWindow = d
		}
	}
}

// WithFocusLimit sets the maximum number of incomplete focus tasks.
func WithFocusLimit(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.focusLimit = n
		}
	}
}

// WithRecorder writes every mutation to an activity log.
func WithRecorder(r *audit.Recorder) Option {
	return func(s *State) { s.rec = r }
}

// WithSignals registers the signal handler.
func WithSignals(fn func(Signal)) Option {
	return func(s *State) { s.onSignal = fn }
}

// WithAfterFunc replaces the timer used for undo expiry.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *State) { s.afterFunc = fn }
}

// State owns every collection. The sub-stores share its lock.
type State struct {
	mu      sync.Mutex
	pending []Signal

	clock      Clock
	newID      func() string
	afterFunc  AfterFunc
	undoWindow time.Duration
	focusLimit int
	rec        *audit.Recorder
	onSignal   func(Signal)

	Tasks   *Tasks
	Ledger  *Ledger
	Undo    *Undo
	Moods   *Moods
	Pages   *Pages
	Events  *Events
	Journal *Journal
	Prefs   *Preferences
}

// Open loads every collection from b. Missing or unreadable keys start
// from their defaults.
func Open(b store.Backend, opts ...Option) *State {
	s := &State{
		clock:      ClockFunc(time.Now),
		newID:      NewID,
		afterFunc:  realAfterFunc,
		undoWindow: DefaultUndoWindow,
		focusLimit: DefaultFocusLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Tasks = newTasks(s, b)
	s.Ledger = newLedger(s, b)
	s.Undo = &Undo{s: s}
	s.Moods = newMoods(s, b)
	s.Pages = newPages(s, b)
	s.Events = newEvents(s, b)
	s.Journal = newJournal(s, b)
	s.Prefs = newPreferences(s, b)
	return s
}

// Now returns the state's current time.
func (s *State) Now() time.Time {
	return s.clock.Now()
}

// FocusLimit returns the configured focus cap.
func (s *State) FocusLimit() int {
	return s.focusLimit
}

func (s *State) lock() {
	s.mu.Lock()
}

// unlock releases the lock and then delivers queued signals.
func (s *State) unlock() {
	sigs := s.pending
	s.pending = nil
	s.mu.Unlock()

	if s.onSignal == nil {
		return
	}
	for _, sig := range sigs {
		s.onSignal(sig)
	}
}

func (s *State) emit(sig Signal) {
	s.pending = append(s.pending, sig)
}

func (s *State) record(action string, inputs interface{}, entityID string, err error) {
	if rerr := s.rec.Record(action, inputs, entityID, err); rerr != nil {
		log.Printf("Failed to record activity %s: %v", action, rerr)
	}
}

func save[T any](slot *store.Slot[T], v T) error {
	if err := slot.Save(v); err != nil {
		return &PersistError{Key: slot.Key(), Err: err}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func emptySlice[T any]() func() []T {
	return func() []T { return []T{} }
}
