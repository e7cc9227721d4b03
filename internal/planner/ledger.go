package planner

import (
	"github.com/fentz26/daybook/internal/store"
)

// Ledger is the running points total and the streak counter. Points
// move only with completion toggles. The streak is set from outside and
// never computed here.
type Ledger struct {
	s      *State
	points int
	streak int

	pointsSlot *store.Slot[int]
	streakSlot *store.Slot[int]
}

func newLedger(s *State, b store.Backend) *Ledger {
	l := &Ledger{
		s:          s,
		pointsSlot: store.NewSlot(b, KeyPoints, store.Zero[int]()),
		streakSlot: store.NewSlot(b, KeyStreak, store.Zero[int]()),
	}
	l.points = l.pointsSlot.Load()
	l.streak = l.streakSlot.Load()
	return l
}

// Total returns the cached points total.
func (l *Ledger) Total() int {
	l.s.lock()
	defer l.s.unlock()
	return l.points
}

// Derived sums the points of every completed task currently in the
// list. Deleting a completed task keeps its points in Total, so the two
// differ once such a task is gone.
func (l *Ledger) Derived() int {
	l.s.lock()
	defer l.s.unlock()

	sum := 0
	for _, task := range l.s.Tasks.items {
		if task.Completed {
			sum += task.Points
		}
	}
	return sum
}

// Streak returns the stored streak counter.
func (l *Ledger) Streak() int {
	l.s.lock()
	defer l.s.unlock()
	return l.streak
}

// SetStreak stores a new streak value. Negative values are rejected.
func (l *Ledger) SetStreak(n int) error {
	l.s.lock()
	defer l.s.unlock()

	if n < 0 {
		err := ErrInvalid
		l.s.record("streak.set", n, "", err)
		return err
	}
	l.streak = n
	err := save(l.streakSlot, l.streak)
	l.s.record("streak.set", n, "", err)
	return err
}

// save writes the points total. Callers hold the lock.
func (l *Ledger) save() error {
	return save(l.pointsSlot, l.points)
}
