package planner

import (
	"errors"
	"regexp"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

var hashtagRe = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)

// ExtractTags returns the distinct lower-cased #hashtags in text, in
// order of first appearance.
func ExtractTags(text string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// Journal is the journal entry collection. Tags are derived from the
// text on every save and stored as a snapshot.
type Journal struct {
	s *State
	c *collection[models.JournalEntry]
}

func newJournal(s *State, b store.Backend) *Journal {
	return &Journal{
		s: s,
		c: newCollection(s, b, KeyJournal, "journal", func(e *models.JournalEntry) *string { return &e.ID }),
	}
}

// Add writes a new entry dated now.
func (j *Journal) Add(text string, mood models.Mood) (*models.JournalEntry, error) {
	j.s.lock()
	defer j.s.unlock()

	out, err := j.c.add(models.JournalEntry{
		Date: j.s.clock.Now(),
		Text: text,
		Tags: ExtractTags(text),
		Mood: mood,
	})
	out = cloneEntry(out)
	return &out, err
}

// Update replaces the entry with entry.ID and re-derives its tags. A
// zero Date keeps the stored date.
func (j *Journal) Update(entry models.JournalEntry) (*models.JournalEntry, error) {
	j.s.lock()
	defer j.s.unlock()

	if entry.Date.IsZero() {
		if cur, err := j.c.get(entry.ID); err == nil {
			entry.Date = cur.Date
		}
	}
	entry.Tags = ExtractTags(entry.Text)
	out, err := j.c.update(entry)
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	out = cloneEntry(out)
	return &out, err
}

// Delete removes the entry. It cannot be undone.
func (j *Journal) Delete(id string) error {
	j.s.lock()
	defer j.s.unlock()
	return j.c.remove(id)
}

// Get returns the entry with id.
func (j *Journal) Get(id string) (*models.JournalEntry, error) {
	j.s.lock()
	defer j.s.unlock()

	e, err := j.c.get(id)
	if err != nil {
		return nil, err
	}
	e = cloneEntry(e)
	return &e, nil
}

// List returns every entry, newest first.
func (j *Journal) List() []models.JournalEntry {
	j.s.lock()
	defer j.s.unlock()
	return cloneEntries(j.c.filter(nil))
}

// Tagged returns the entries carrying tag, with or without a leading #.
func (j *Journal) Tagged(tag string) []models.JournalEntry {
	j.s.lock()
	defer j.s.unlock()

	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	return cloneEntries(j.c.filter(func(e models.JournalEntry) bool {
		for _, t := range e.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}))
}

func cloneEntry(e models.JournalEntry) models.JournalEntry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

func cloneEntries(in []models.JournalEntry) []models.JournalEntry {
	out := make([]models.JournalEntry, len(in))
	for i, e := range in {
		out[i] = cloneEntry(e)
	}
	return out
}
