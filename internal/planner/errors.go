package planner

import (
	"errors"
	"fmt"

	"github.com/fentz26/daybook/internal/audit"
)

// Sentinel errors for planner operations.
var (
	ErrNotFound      = errors.New("not found")
	ErrFocusCapacity = errors.New("focus capacity reached")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrUndoExpired   = errors.New("undo window expired")
	ErrInvalid       = errors.New("invalid input")
	ErrPersist       = errors.New("persist failed")
)

// PersistError reports a storage write that failed after the in-memory
// state had already changed. The change is kept for the session.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrPersist) match any PersistError.
func (e *PersistError) Is(target error) bool { return target == ErrPersist }

// Outcome classifies err for the activity log.
func Outcome(err error) string {
	switch {
	case err == nil:
		return audit.OutcomeOK
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNothingToUndo), errors.Is(err, ErrUndoExpired):
		return audit.OutcomeNotFound
	case errors.Is(err, ErrFocusCapacity):
		return audit.OutcomeCapacity
	case errors.Is(err, ErrInvalid):
		return audit.OutcomeInvalid
	default:
		return audit.OutcomePersistError
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
