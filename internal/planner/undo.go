package planner

import (
	"time"

	"github.com/fentz26/daybook/internal/models"
)

// Undo holds the most recently deleted task until its deadline. A new
// delete replaces the slot and restarts the timer. Whether a restore or
// an expiry wins is decided by comparing the clock to the deadline,
// never by which call runs first.
type Undo struct {
	s        *State
	task     *models.Task
	deadline time.Time
	stop     func() bool
	gen      uint64
}

// stash replaces the slot. Callers hold the lock.
func (u *Undo) stash(task models.Task) {
	if u.stop != nil {
		u.stop()
	}
	u.gen++
	t := cloneTask(task)
	u.task = &t
	u.deadline = u.s.clock.Now().Add(u.s.undoWindow)
	u.arm(u.gen, u.s.undoWindow)
}

func (u *Undo) arm(gen uint64, d time.Duration) {
	u.stop = u.s.afterFunc(d, func() { u.fire(gen) })
}

// fire runs on the timer goroutine.
func (u *Undo) fire(gen uint64) {
	u.s.lock()
	defer u.s.unlock()

	if gen != u.gen || u.task == nil {
		return
	}
	if now := u.s.clock.Now(); now.Before(u.deadline) {
		u.arm(gen, u.deadline.Sub(now))
		return
	}
	u.expireLocked()
}

// Expire clears the slot if its deadline has passed. It reports whether
// a task was dropped.
func (u *Undo) Expire() bool {
	u.s.lock()
	defer u.s.unlock()

	if u.task == nil || u.s.clock.Now().Before(u.deadline) {
		return false
	}
	u.expireLocked()
	return true
}

func (u *Undo) expireLocked() {
	dropped := *u.task
	u.clear()
	u.s.emit(Signal{Kind: SignalUndoExpired, Task: dropped})
	u.s.record("task.undo_expire", dropped.ID, dropped.ID, nil)
}

// Restore puts the stashed task back at the front of the task list,
// provided the deadline has not passed. The points ledger is not touched.
func (u *Undo) Restore() (*models.Task, error) {
	u.s.lock()
	defer u.s.unlock()

	if u.task == nil {
		err := ErrNothingToUndo
		u.s.record("task.restore", nil, "", err)
		return nil, err
	}
	if !u.s.clock.Now().Before(u.deadline) {
		u.expireLocked()
		err := ErrUndoExpired
		u.s.record("task.restore", nil, "", err)
		return nil, err
	}

	task := *u.task
	u.clear()
	err := u.s.Tasks.restore(task)
	u.s.record("task.restore", task.ID, task.ID, err)

	out := cloneTask(u.s.Tasks.items[0])
	return &out, err
}

// Pending returns the stashed task and its deadline.
func (u *Undo) Pending() (models.Task, time.Time, bool) {
	u.s.lock()
	defer u.s.unlock()

	if u.task == nil {
		return models.Task{}, time.Time{}, false
	}
	return cloneTask(*u.task), u.deadline, true
}

func (u *Undo) clear() {
	if u.stop != nil {
		u.stop()
		u.stop = nil
	}
	u.gen++
	u.task = nil
	u.deadline = time.Time{}
}
