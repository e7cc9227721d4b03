package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

type failingBackend struct {
	*File
}

func (failingBackend) Put(string, []byte) error {
	return errors.New("disk full")
}

func TestSlotRoundTrip(t *testing.T) {
	b := NewMemory()
	slot := NewSlot(b, "pages", Zero[[]string]())

	if got := slot.Load(); got != nil {
		t.Errorf("Expected nil default, got %v", got)
	}
	if err := slot.Save([]string{"home", "work"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got := slot.Load()
	if len(got) != 2 || got[1] != "work" {
		t.Errorf("Expected [home work], got %v", got)
	}
}

func TestSlotCorruptValueFallsBack(t *testing.T) {
	b := NewMemory()
	if err := b.Put("points", []byte(`{not json`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	slot := NewSlot(b, "points", Value(7))
	if got := slot.Load(); got != 7 {
		t.Errorf("Expected default 7 for corrupt value, got %d", got)
	}
}

func TestSlotSaveError(t *testing.T) {
	slot := NewSlot[int](failingBackend{NewMemory()}, "points", Zero[int]())
	if err := slot.Save(1); err == nil {
		t.Error("Expected Save to surface backend error")
	}
}

func TestFileBackendLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	b, err := NewFile(fs, "/data")
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := NewSlot(b, "streak", Zero[int]()).Save(4); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := afero.ReadFile(fs, "/data/streak.json")
	if err != nil {
		t.Fatalf("Expected streak.json on disk: %v", err)
	}
	if string(data) != "4" {
		t.Errorf("Expected 4, got %s", data)
	}
	if ok, _ := afero.Exists(fs, "/data/streak.json.tmp"); ok {
		t.Error("Temporary file should be renamed away")
	}
}

func TestLockDir(t *testing.T) {
	dir := t.TempDir()

	first, err := LockDir(dir)
	if err != nil {
		t.Fatalf("First LockDir failed: %v", err)
	}

	if _, err := LockDir(dir); !errors.Is(err, ErrLocked) {
		t.Errorf("Expected ErrLocked for second holder, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	second, err := LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir after unlock failed: %v", err)
	}
	second.Unlock()
}
