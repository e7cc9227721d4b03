package audit

import (
	"errors"
	"testing"

	"github.com/fentz26/daybook/internal/store"
)

var errMissing = errors.New("missing")

func TestRecordOutcomes(t *testing.T) {
	log := store.NewMemory()
	r := NewRecorder(log, func(err error) string {
		if errors.Is(err, errMissing) {
			return OutcomeNotFound
		}
		return OutcomePersistError
	})

	if err := r.Record("task.add", map[string]string{"title": "A"}, "t1", nil); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := r.Record("task.complete", "t9", "t9", errMissing); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := r.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Outcome != OutcomeNotFound || got[0].Details != "missing" {
		t.Errorf("Expected not_found with details, got %s %q", got[0].Outcome, got[0].Details)
	}
	if got[1].Outcome != OutcomeOK {
		t.Errorf("Expected ok, got %s", got[1].Outcome)
	}
	if len(got[1].InputsHash) != 64 {
		t.Errorf("Expected sha256 hex hash, got %q", got[1].InputsHash)
	}
}

func TestHashInputsIsStable(t *testing.T) {
	a := hashInputs(map[string]int{"b": 2, "a": 1})
	b := hashInputs(map[string]int{"a": 1, "b": 2})
	if a != b {
		t.Errorf("Expected equal hashes for equal maps, got %s and %s", a, b)
	}
	if hashInputs(func() {}) != "hash_error" {
		t.Error("Expected hash_error for unmarshalable input")
	}
}

func TestNilRecorderDiscards(t *testing.T) {
	var r *Recorder
	if err := r.Record("task.add", nil, "", nil); err != nil {
		t.Errorf("Nil recorder should discard, got %v", err)
	}
}
