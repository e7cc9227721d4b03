package planner

import (
	"github.com/fentz26/daybook/internal/store"
)

// collection is the shared add/update/delete core of events and journal
// entries. Items are kept newest first; deletes are final.
type collection[T any] struct {
	s     *State
	kind  string
	items []T
	slot  *store.Slot[[]T]
	id    func(*T) *string
}

func newCollection[T any](s *State, b store.Backend, key, kind string, id func(*T) *string) *collection[T] {
	c := &collection[T]{
		s:    s,
		kind: kind,
		slot: store.NewSlot(b, key, emptySlice[T]()),
		id:   id,
	}
	c.items = c.slot.Load()
	return c
}

// add assigns a fresh id and prepends item. Callers hold the lock.
func (c *collection[T]) add(item T) (T, error) {
	*c.id(&item) = c.s.newID()
	c.items = append([]T{item}, c.items...)
	err := save(c.slot, c.items)
	c.s.record(c.kind+".add", item, *c.id(&item), err)
	return item, err
}

// update replaces the item with the same id. Callers hold the lock.
func (c *collection[T]) update(item T) (T, error) {
	id := *c.id(&item)
	i := c.index(id)
	if i < 0 {
		err := notFound(c.kind, id)
		c.s.record(c.kind+".update", item, id, err)
		var zero T
		return zero, err
	}
	c.items[i] = item
	err := save(c.slot, c.items)
	c.s.record(c.kind+".update", item, id, err)
	return item, err
}

// remove deletes the item with id. Callers hold the lock.
func (c *collection[T]) remove(id string) error {
	i := c.index(id)
	if i < 0 {
		err := notFound(c.kind, id)
		c.s.record(c.kind+".delete", id, id, err)
		return err
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	err := save(c.slot, c.items)
	c.s.record(c.kind+".delete", id, id, err)
	return err
}

func (c *collection[T]) get(id string) (T, error) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, notFound(c.kind, id)
	}
	return c.items[i], nil
}

func (c *collection[T]) index(id string) int {
	for i := range c.items {
		if *c.id(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) filter(keep func(T) bool) []T {
	var out []T
	for _, item := range c.items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}
