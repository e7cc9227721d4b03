package planner

import (
	"sort"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

// Pages owns the user's task folders. Deleting a page keeps its tasks
// and unfiles them.
type Pages struct {
	s     *State
	items []models.TaskPage
	slot  *store.Slot[[]models.TaskPage]
}

func newPages(s *State, b store.Backend) *Pages {
	p := &Pages{s: s, slot: store.NewSlot(b, KeyPages, emptySlice[models.TaskPage]())}
	p.items = p.slot.Load()
	return p
}

// Add appends a page with Order set to the current page count.
func (p *Pages) Add(name, accentColor string) (*models.TaskPage, error) {
	p.s.lock()
	defer p.s.unlock()

	page := models.TaskPage{
		ID:          p.s.newID(),
		Name:        name,
		AccentColor: accentColor,
		Order:       len(p.items),
		CreatedAt:   p.s.clock.Now(),
	}
	p.items = append(p.items, page)

	err := save(p.slot, p.items)
	p.s.record("page.add", map[string]string{"name": name, "color": accentColor}, page.ID, err)
	return &page, err
}

// Update replaces the name and accent color of the page with page.ID.
func (p *Pages) Update(page models.TaskPage) (*models.TaskPage, error) {
	p.s.lock()
	defer p.s.unlock()

	i := p.index(page.ID)
	if i < 0 {
		err := notFound("page", page.ID)
		p.s.record("page.update", page, page.ID, err)
		return nil, err
	}
	p.items[i].Name = page.Name
	p.items[i].AccentColor = page.AccentColor

	err := save(p.slot, p.items)
	p.s.record("page.update", page, page.ID, err)
	out := p.items[i]
	return &out, err
}

// Delete removes the page and clears PageID on every task that pointed
// at it. No task is removed. Callers filtering by this page should reset
// their filter.
func (p *Pages) Delete(id string) error {
	p.s.lock()
	defer p.s.unlock()

	i := p.index(id)
	if i < 0 {
		err := notFound("page", id)
		p.s.record("page.delete", id, id, err)
		return err
	}
	p.items = append(p.items[:i:i], p.items[i+1:]...)

	errs := []error{save(p.slot, p.items)}
	if p.s.Tasks.clearPage(id) {
		errs = append(errs, save(p.s.Tasks.slot, p.s.Tasks.items))
	}
	err := firstErr(errs...)
	p.s.record("page.delete", id, id, err)
	return err
}

// Reorder puts the listed pages first in the given sequence, then any
// pages not listed in their current order, and renumbers all of them
// 0..n-1. Unknown and repeated ids are skipped.
func (p *Pages) Reorder(ids []string) error {
	p.s.lock()
	defer p.s.unlock()

	picked := make(map[string]bool, len(ids))
	out := make([]models.TaskPage, 0, len(p.items))
	for _, id := range ids {
		i := p.index(id)
		if i < 0 || picked[id] {
			continue
		}
		picked[id] = true
		out = append(out, p.items[i])
	}
	for _, page := range p.sorted() {
		if !picked[page.ID] {
			out = append(out, page)
		}
	}
	for i := range out {
		out[i].Order = i
	}
	p.items = out

	err := save(p.slot, p.items)
	p.s.record("page.reorder", ids, "", err)
	return err
}

// Get returns the page with id.
func (p *Pages) Get(id string) (*models.TaskPage, error) {
	p.s.lock()
	defer p.s.unlock()

	i := p.index(id)
	if i < 0 {
		return nil, notFound("page", id)
	}
	out := p.items[i]
	return &out, nil
}

// Resolve returns the page a task belongs to. A dangling PageID counts
// as unfiled and reports false.
func (p *Pages) Resolve(pageID string) (*models.TaskPage, bool) {
	if pageID == "" {
		return nil, false
	}
	page, err := p.Get(pageID)
	return page, err == nil
}

// List returns every page sorted by Order.
func (p *Pages) List() []models.TaskPage {
	p.s.lock()
	defer p.s.unlock()
	return p.sorted()
}

func (p *Pages) sorted() []models.TaskPage {
	out := append([]models.TaskPage(nil), p.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (p *Pages) index(id string) int {
	for i := range p.items {
		if p.items[i].ID == id {
			return i
		}
	}
	return -1
}

// exists reports whether a page with id is present. Callers hold the lock.
func (p *Pages) exists(id string) bool {
	return p.index(id) >= 0
}
