package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Slot is a typed view of one key in a Backend.
type Slot[T any] struct {
	b   Backend
	key string
	def func() T
}

// NewSlot binds key on b. def builds the value used when the key is
// missing or unreadable; it is called on every fallback so callers never
// share a default.
func NewSlot[T any](b Backend, key string, def func() T) *Slot[T] {
	return &Slot[T]{b: b, key: key, def: def}
}

// Key returns the storage key.
func (s *Slot[T]) Key() string {
	return s.key
}

// Load reads and decodes the stored value. A missing key yields the
// default silently; a backend or decode failure is logged and also
// yields the default.
func (s *Slot[T]) Load() T {
	raw, err := s.b.Get(s.key)
	if errors.Is(err, ErrKeyNotFound) {
		return s.def()
	}
	if err != nil {
		log.Printf("store: key %q unreadable, using default: %v", s.key, err)
		return s.def()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("store: key %q unreadable, using default: %v", s.key, err)
		return s.def()
	}
	return v
}

// Save encodes v and writes it under the key.
func (s *Slot[T]) Save(v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	return s.b.Put(s.key, raw)
}

// Zero returns a default builder for T's zero value.
func Zero[T any]() func() T {
	return func() T {
		var v T
		return v
	}
}

// Value returns a default builder that always yields v.
func Value[T any](v T) func() T {
	return func() T { return v }
}
