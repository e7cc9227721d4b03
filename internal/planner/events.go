package planner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

// Events is the calendar event collection.
type Events struct {
	s *State
	c *collection[models.CalendarEvent]
}

func newEvents(s *State, b store.Backend) *Events {
	return &Events{
		s: s,
		c: newCollection(s, b, KeyEvents, "event", func(e *models.CalendarEvent) *string { return &e.ID }),
	}
}

// Add stores ev under a fresh id.
func (e *Events) Add(ev models.CalendarEvent) (*models.CalendarEvent, error) {
	e.s.lock()
	defer e.s.unlock()

	if ev.AllDay {
		ev.StartTime, ev.EndTime = "", ""
	}
	out, err := e.c.add(ev)
	return &out, err
}

// Update replaces the event with ev.ID.
func (e *Events) Update(ev models.CalendarEvent) (*models.CalendarEvent, error) {
	e.s.lock()
	defer e.s.unlock()

	if ev.AllDay {
		ev.StartTime, ev.EndTime = "", ""
	}
	out, err := e.c.update(ev)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return &out, err
}

// Delete removes the event. It cannot be undone.
func (e *Events) Delete(id string) error {
	e.s.lock()
	defer e.s.unlock()
	return e.c.remove(id)
}

// Get returns the event with id.
func (e *Events) Get(id string) (*models.CalendarEvent, error) {
	e.s.lock()
	defer e.s.unlock()

	ev, err := e.c.get(id)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns every event sorted by day and start time.
func (e *Events) List() []models.CalendarEvent {
	e.s.lock()
	defer e.s.unlock()
	return sortEvents(e.c.filter(nil))
}

// On returns the events on day, all-day events first.
func (e *Events) On(day models.Date) []models.CalendarEvent {
	e.s.lock()
	defer e.s.unlock()
	return sortEvents(e.c.filter(func(ev models.CalendarEvent) bool { return ev.Date == day }))
}

// DueReminders returns the timed events whose reminder lead time has
// started at now and whose start is still ahead.
func (e *Events) DueReminders(now time.Time) []models.CalendarEvent {
	e.s.lock()
	defer e.s.unlock()

	return sortEvents(e.c.filter(func(ev models.CalendarEvent) bool {
		if ev.Reminder <= 0 {
			return false
		}
		start, ok := EventStart(ev)
		if !ok {
			return false
		}
		notifyAt := start.Add(-time.Duration(ev.Reminder) * time.Minute)
		return !now.Before(notifyAt) && now.Before(start)
	}))
}

// EventStart returns the local start time of a timed event.
func EventStart(ev models.CalendarEvent) (time.Time, bool) {
	if ev.AllDay || ev.Date.IsZero() || ev.StartTime == "" {
		return time.Time{}, false
	}
	h, m, err := parseClock(ev.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	return ev.Date.Time(time.Local).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), true
}

func sortEvents(evs []models.CalendarEvent) []models.CalendarEvent {
	sort.SliceStable(evs, func(i, j int) bool {
		a, b := evs[i], evs[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.AllDay != b.AllDay {
			return a.AllDay
		}
		return a.StartTime < b.StartTime
	})
	return evs
}

// parseClock parses a 24-hour "HH:MM" time of day.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}
