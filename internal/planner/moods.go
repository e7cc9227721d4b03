package planner

import (
	"fmt"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

// Moods keeps at most one entry per local calendar day, newest first.
type Moods struct {
	s     *State
	items []models.MoodEntry
	slot  *store.Slot[[]models.MoodEntry]
}

func newMoods(s *State, b store.Backend) *Moods {
	m := &Moods{s: s, slot: store.NewSlot(b, KeyMoods, emptySlice[models.MoodEntry]())}
	m.items = m.slot.Load()
	return m
}

// Record replaces today's entry with a new one. Nothing from the old
// entry is carried over, so an empty note clears a previous note.
func (m *Moods) Record(mood models.Mood, note string, completedTaskIDs []string) (*models.MoodEntry, error) {
	m.s.lock()
	defer m.s.unlock()

	inputs := map[string]interface{}{"mood": mood, "note": note, "completed": completedTaskIDs}
	if !mood.Valid() {
		err := fmt.Errorf("%w: unknown mood %q", ErrInvalid, mood)
		m.s.record("mood.record", inputs, "", err)
		return nil, err
	}

	now := m.s.clock.Now()
	today := models.Today(now)
	kept := make([]models.MoodEntry, 0, len(m.items)+1)
	for _, e := range m.items {
		if !today.Contains(e.Date) {
			kept = append(kept, e)
		}
	}

	entry := models.MoodEntry{
		ID:               m.s.newID(),
		Date:             now,
		Mood:             mood,
		Note:             note,
		CompletedTaskIDs: append([]string(nil), completedTaskIDs...),
	}
	m.items = append([]models.MoodEntry{entry}, kept...)

	err := save(m.slot, m.items)
	m.s.record("mood.record", inputs, entry.ID, err)
	out := cloneMood(entry)
	return &out, err
}

// Delete removes the entry with id.
func (m *Moods) Delete(id string) error {
	m.s.lock()
	defer m.s.unlock()

	for i, e := range m.items {
		if e.ID == id {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			err := save(m.slot, m.items)
			m.s.record("mood.delete", id, id, err)
			return err
		}
	}
	err := notFound("mood", id)
	m.s.record("mood.delete", id, id, err)
	return err
}

// Today returns the entry recorded on the current local day.
func (m *Moods) Today() (*models.MoodEntry, bool) {
	m.s.lock()
	defer m.s.unlock()

	today := models.Today(m.s.clock.Now())
	for _, e := range m.items {
		if today.Contains(e.Date) {
			out := cloneMood(e)
			return &out, true
		}
	}
	return nil, false
}

// On returns the entries recorded on day. Data written by daybook holds
// at most one; older data may hold more.
func (m *Moods) On(day models.Date) []models.MoodEntry {
	m.s.lock()
	defer m.s.unlock()

	var out []models.MoodEntry
	for _, e := range m.items {
		if day.Contains(e.Date) {
			out = append(out, cloneMood(e))
		}
	}
	return out
}

// List returns every entry, newest first.
func (m *Moods) List() []models.MoodEntry {
	m.s.lock()
	defer m.s.unlock()

	out := make([]models.MoodEntry, len(m.items))
	for i, e := range m.items {
		out[i] = cloneMood(e)
	}
	return out
}

func cloneMood(e models.MoodEntry) models.MoodEntry {
	if e.CompletedTaskIDs != nil {
		e.CompletedTaskIDs = append([]string(nil), e.CompletedTaskIDs...)
	}
	return e
}
