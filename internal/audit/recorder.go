// Package audit records every state-mutating operation so that silent
// outcomes (a missing id, a full focus slot) remain visible afterwards.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

// Outcomes written to the activity log.
const (
	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeCapacity     = "capacity"
	OutcomeInvalid      = "invalid"
	OutcomePersistError = "persist_error"
)

// Classifier maps an operation error to an outcome string.
type Classifier func(err error) string

// Recorder writes activity records for state-mutating actions. A nil
// *Recorder discards everything.
type Recorder struct {
	log      store.ActivityLog
	classify Classifier
	now      func() time.Time
}

// NewRecorder creates a recorder writing to log. classify may be nil, in
// which case every non-nil error is recorded as a persist error.
func NewRecorder(log store.ActivityLog, classify Classifier) *Recorder {
	if classify == nil {
		classify = func(err error) string { return OutcomePersistError }
	}
	return &Recorder{log: log, classify: classify, now: time.Now}
}

// Record writes one activity entry for action. err decides the outcome.
func (r *Recorder) Record(action string, inputs interface{}, entityID string, err error) error {
	if r == nil || r.log == nil {
		return nil
	}

	outcome := OutcomeOK
	details := ""
	if err != nil {
		outcome = r.classify(err)
		details = err.Error()
	}

	return r.log.WriteActivity(models.Activity{
		Action:     action,
		InputsHash: hashInputs(inputs),
		Outcome:    outcome,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  r.now().UTC(),
	})
}

// Recent returns up to limit entries, newest first.
func (r *Recorder) Recent(limit int) ([]models.Activity, error) {
	if r == nil || r.log == nil {
		return nil, errors.New("activity log not configured")
	}
	return r.log.ListActivity(limit)
}

// hashInputs creates a SHA256 hash of the inputs for reproducibility.
func hashInputs(inputs interface{}) string {
	data, err := json.Marshal(inputs)
	if err != nil {
		return "hash_error"
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
