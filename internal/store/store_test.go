package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fentz26/daybook/internal/models"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := s.Put("tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.Get("tasks")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Expected [] after reopen, got %s", got)
	}
}

func TestBackendContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Backend{
		"sqlite": func(t *testing.T) Backend { return newTestStore(t) },
		"file":   func(t *testing.T) Backend { return NewMemory() },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			b := open(t)
			defer b.Close()

			if _, err := b.Get("missing"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("Expected ErrKeyNotFound, got %v", err)
			}

			if err := b.Put("points", []byte(`30`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			if err := b.Put("points", []byte(`60`)); err != nil {
				t.Fatalf("Overwrite failed: %v", err)
			}
			got, err := b.Get("points")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `60` {
				t.Errorf("Expected 60, got %s", got)
			}

			if err := b.Put("moods", []byte(`[]`)); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			keys, err := b.Keys()
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if len(keys) != 2 || keys[0] != "moods" || keys[1] != "points" {
				t.Errorf("Expected [moods points], got %v", keys)
			}

			if err := b.Delete("points"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			if err := b.Delete("points"); err != nil {
				t.Errorf("Deleting a missing key should succeed, got %v", err)
			}
			if _, err := b.Get("points"); !errors.Is(err, ErrKeyNotFound) {
				t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
			}
		})
	}
}

func TestActivityLog(t *testing.T) {
	logs := map[string]func(t *testing.T) ActivityLog{
		"sqlite": func(t *testing.T) ActivityLog { return newTestStore(t) },
		"file":   func(t *testing.T) ActivityLog { return NewMemory() },
	}

	for name, open := range logs {
		t.Run(name, func(t *testing.T) {
			l := open(t)
			base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

			for i, action := range []string{"task.add", "task.complete", "task.delete"} {
				err := l.WriteActivity(models.Activity{
					Action:     action,
					InputsHash: "abc",
					Outcome:    "ok",
					EntityID:   "t1",
					Timestamp:  base.Add(time.Duration(i) * time.Minute),
				})
				if err != nil {
					t.Fatalf("WriteActivity failed: %v", err)
				}
			}

			got, err := l.ListActivity(2)
			if err != nil {
				t.Fatalf("ListActivity failed: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("Expected 2 records, got %d", len(got))
			}
			if got[0].Action != "task.delete" || got[1].Action != "task.complete" {
				t.Errorf("Expected newest first, got %s, %s", got[0].Action, got[1].Action)
			}
			if got[0].ID == "" {
				t.Error("Activity ID should be assigned")
			}
		})
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.Ping(ctx)
	if err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func newTestStore(t *testing.T) *Store {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}
