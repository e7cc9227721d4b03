package planner

import (
	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/store"
)

// CopySuffix is appended to the title of a duplicated task.
const CopySuffix = " (copy)"

// Tasks owns the task collection. The collection is kept most recent
// first; Order is a separate sort key for manual arrangement.
type Tasks struct {
	s     *State
	items []models.Task
	slot  *store.Slot[[]models.Task]
}

func newTasks(s *State, b store.Backend) *Tasks {
	t := &Tasks{s: s, slot: store.NewSlot(b, KeyTasks, emptySlice[models.Task]())}
	t.items = t.slot.Load()
	for i := range t.items {
		t.rehydrate(&t.items[i])
	}
	return t
}

// rehydrate repairs a loaded task so completed and completedAt agree.
func (t *Tasks) rehydrate(task *models.Task) {
	if task.Repeat == "" {
		task.Repeat = models.RepeatNone
	}
	if !task.Completed {
		task.CompletedAt = nil
		return
	}
	if task.CompletedAt == nil {
		at := task.CreatedAt
		if at.IsZero() {
			at = t.s.clock.Now()
		}
		task.CompletedAt = &at
	}
}

// Add creates a task from draft and puts it at the front of the
// collection. Points are captured from the priority here and never
// recomputed.
func (t *Tasks) Add(draft models.TaskDraft) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	repeat := draft.Repeat
	if repeat == "" {
		repeat = models.RepeatNone
	}
	task := models.Task{
		ID:          t.s.newID(),
		Title:       draft.Title,
		Description: draft.Description,
		Notes:       draft.Notes,
		Category:    draft.Category,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		DueTime:     draft.DueTime,
		Repeat:      repeat,
		Points:      draft.Priority.Points(),
		PageID:      draft.PageID,
		Subtasks:    t.freshSubtasks(draft.Subtasks),
		Order:       len(t.items),
		CreatedAt:   t.s.clock.Now(),
	}
	t.items = append([]models.Task{task}, t.items...)

	err := save(t.slot, t.items)
	t.s.record("task.add", draft, task.ID, err)
	out := cloneTask(task)
	return &out, err
}

// Complete toggles completion. Completing stamps CompletedAt, credits
// the ledger and emits SignalPointsEarned; un-completing clears
// CompletedAt and debits the ledger.
func (t *Tasks) Complete(id string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(id)
	if i < 0 {
		err := notFound("task", id)
		t.s.record("task.complete", id, id, err)
		return nil, err
	}

	task := &t.items[i]
	if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
		t.s.Ledger.points -= task.Points
	} else {
		now := t.s.clock.Now()
		task.Completed = true
		task.CompletedAt = &now
		t.s.Ledger.points += task.Points
		t.s.emit(Signal{Kind: SignalPointsEarned, Points: task.Points, Task: cloneTask(*task)})
	}

	err := firstErr(save(t.slot, t.items), t.s.Ledger.save())
	t.s.record("task.complete", id, id, err)
	out := cloneTask(*task)
	return &out, err
}

// Delete removes a task and stashes it in the undo slot. The ledger is
// not touched.
func (t *Tasks) Delete(id string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(id)
	if i < 0 {
		err := notFound("task", id)
		t.s.record("task.delete", id, id, err)
		return nil, err
	}

	removed := t.items[i]
	t.items = append(t.items[:i:i], t.items[i+1:]...)
	t.s.Undo.stash(removed)
	t.s.emit(Signal{Kind: SignalTaskDeleted, Task: cloneTask(removed)})

	err := save(t.slot, t.items)
	t.s.record("task.delete", id, id, err)
	out := cloneTask(removed)
	return &out, err
}

// Update replaces the editable fields of the task with task.ID. It never
// changes completion, points, creation time or order. Raising a task
// into focus past the cap fails with ErrFocusCapacity.
func (t *Tasks) Update(task models.Task) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(task.ID)
	if i < 0 {
		err := notFound("task", task.ID)
		t.s.record("task.update", task, task.ID, err)
		return nil, err
	}

	cur := &t.items[i]
	if task.IsFocus && !cur.IsFocus && !cur.Completed && t.focusCount() >= t.s.focusLimit {
		t.s.emit(Signal{Kind: SignalFocusCapacityReached, Task: cloneTask(*cur)})
		err := ErrFocusCapacity
		t.s.record("task.update", task, task.ID, err)
		return nil, err
	}

	cur.Title = task.Title
	cur.Description = task.Description
	cur.Notes = task.Notes
	cur.Category = task.Category
	cur.Priority = task.Priority
	cur.DueDate = task.DueDate
	cur.DueTime = task.DueTime
	cur.Repeat = task.Repeat
	if cur.Repeat == "" {
		cur.Repeat = models.RepeatNone
	}
	cur.PageID = task.PageID
	cur.Subtasks = t.keepSubtaskIDs(task.Subtasks)
	cur.IsFocus = task.IsFocus
	cur.Marked = task.Marked

	err := save(t.slot, t.items)
	t.s.record("task.update", task, task.ID, err)
	out := cloneTask(*cur)
	return &out, err
}

// Duplicate copies a task under a fresh id. The copy starts incomplete,
// outside focus, with the title suffixed by CopySuffix.
func (t *Tasks) Duplicate(id string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(id)
	if i < 0 {
		err := notFound("task", id)
		t.s.record("task.duplicate", id, id, err)
		return nil, err
	}

	dup := cloneTask(t.items[i])
	dup.ID = t.s.newID()
	dup.Title += CopySuffix
	dup.Completed = false
	dup.CompletedAt = nil
	dup.IsFocus = false
	dup.Order = len(t.items)
	dup.CreatedAt = t.s.clock.Now()
	for j := range dup.Subtasks {
		dup.Subtasks[j].ID = t.s.newID()
	}
	t.items = append([]models.Task{dup}, t.items...)

	err := save(t.slot, t.items)
	t.s.record("task.duplicate", id, dup.ID, err)
	out := cloneTask(dup)
	return &out, err
}

// Reorder numbers the listed tasks 0..k-1 in the given sequence and
// moves them to the front. Tasks not listed follow unchanged in their
// existing relative order. Unknown and repeated ids are skipped.
func (t *Tasks) Reorder(ids []string) error {
	t.s.lock()
	defer t.s.unlock()

	picked := make(map[string]bool, len(ids))
	front := make([]models.Task, 0, len(ids))
	for _, id := range ids {
		i := t.index(id)
		if i < 0 || picked[id] {
			continue
		}
		picked[id] = true
		task := t.items[i]
		task.Order = len(front)
		front = append(front, task)
	}

	rest := make([]models.Task, 0, len(t.items)-len(front))
	for _, task := range t.items {
		if !picked[task.ID] {
			rest = append(rest, task)
		}
	}
	t.items = append(front, rest...)

	err := save(t.slot, t.items)
	t.s.record("task.reorder", ids, "", err)
	return err
}

// ToggleFocus flips IsFocus. Turning focus on fails with
// ErrFocusCapacity and emits SignalFocusCapacityReached when the cap
// of incomplete focus tasks is already reached.
func (t *Tasks) ToggleFocus(id string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(id)
	if i < 0 {
		err := notFound("task", id)
		t.s.record("task.focus", id, id, err)
		return nil, err
	}

	task := &t.items[i]
	if !task.IsFocus && t.focusCount() >= t.s.focusLimit {
		t.s.emit(Signal{Kind: SignalFocusCapacityReached, Task: cloneTask(*task)})
		err := ErrFocusCapacity
		t.s.record("task.focus", id, id, err)
		return nil, err
	}
	task.IsFocus = !task.IsFocus

	err := save(t.slot, t.items)
	t.s.record("task.focus", id, id, err)
	out := cloneTask(*task)
	return &out, err
}

// ToggleSubtask flips one subtask. The parent's completion is unaffected.
func (t *Tasks) ToggleSubtask(taskID, subtaskID string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(taskID)
	if i < 0 {
		err := notFound("task", taskID)
		t.s.record("task.subtask", subtaskID, taskID, err)
		return nil, err
	}
	task := &t.items[i]
	j := -1
	for k := range task.Subtasks {
		if task.Subtasks[k].ID == subtaskID {
			j = k
			break
		}
	}
	if j < 0 {
		err := notFound("subtask", subtaskID)
		t.s.record("task.subtask", subtaskID, taskID, err)
		return nil, err
	}
	task.Subtasks[j].Completed = !task.Subtasks[j].Completed

	err := save(t.slot, t.items)
	t.s.record("task.subtask", subtaskID, taskID, err)
	out := cloneTask(*task)
	return &out, err
}

// Get returns a copy of the task with id.
func (t *Tasks) Get(id string) (*models.Task, error) {
	t.s.lock()
	defer t.s.unlock()

	i := t.index(id)
	if i < 0 {
		return nil, notFound("task", id)
	}
	out := cloneTask(t.items[i])
	return &out, nil
}

// List returns a copy of every task, most recent first.
func (t *Tasks) List() []models.Task {
	t.s.lock()
	defer t.s.unlock()
	return cloneTasks(t.items)
}

// Focus returns the incomplete focus tasks.
func (t *Tasks) Focus() []models.Task {
	t.s.lock()
	defer t.s.unlock()

	var out []models.Task
	for _, task := range t.items {
		if task.IsFocus && !task.Completed {
			out = append(out, cloneTask(task))
		}
	}
	return out
}

// FocusSlotsLeft reports how many more tasks may enter focus.
func (t *Tasks) FocusSlotsLeft() int {
	t.s.lock()
	defer t.s.unlock()

	left := t.s.focusLimit - t.focusCount()
	if left < 0 {
		return 0
	}
	return left
}

// DueOn returns the tasks due on day.
func (t *Tasks) DueOn(day models.Date) []models.Task {
	t.s.lock()
	defer t.s.unlock()

	var out []models.Task
	for _, task := range t.items {
		if task.DueDate == day {
			out = append(out, cloneTask(task))
		}
	}
	return out
}

// CompletedOn returns the ids of tasks completed on day, local time.
func (t *Tasks) CompletedOn(day models.Date) []string {
	t.s.lock()
	defer t.s.unlock()

	var ids []string
	for _, task := range t.items {
		if task.Completed && task.CompletedAt != nil && day.Contains(*task.CompletedAt) {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

// restore puts a task back at the front. Callers hold the lock.
func (t *Tasks) restore(task models.Task) error {
	if task.IsFocus && !task.Completed && t.focusCount() >= t.s.focusLimit {
		task.IsFocus = false
	}
	t.items = append([]models.Task{task}, t.items...)
	return save(t.slot, t.items)
}

// clearPage unfiles every task on pageID. Callers hold the lock.
func (t *Tasks) clearPage(pageID string) (changed bool) {
	for i := range t.items {
		if t.items[i].PageID == pageID {
			t.items[i].PageID = ""
			changed = true
		}
	}
	return changed
}

func (t *Tasks) index(id string) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tasks) focusCount() int {
	n := 0
	for _, task := range t.items {
		if task.IsFocus && !task.Completed {
			n++
		}
	}
	return n
}

func (t *Tasks) freshSubtasks(in []models.Subtask) []models.Subtask {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Subtask, len(in))
	for i, st := range in {
		out[i] = models.Subtask{ID: t.s.newID(), Title: st.Title, Completed: st.Completed}
	}
	return out
}

// keepSubtaskIDs copies in, assigning ids to subtasks added by the caller.
func (t *Tasks) keepSubtaskIDs(in []models.Subtask) []models.Subtask {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.Subtask, len(in))
	for i, st := range in {
		if st.ID == "" {
			st.ID = t.s.newID()
		}
		out[i] = st
	}
	return out
}

func cloneTask(task models.Task) models.Task {
	if task.Subtasks != nil {
		task.Subtasks = append([]models.Subtask(nil), task.Subtasks...)
	}
	if task.CompletedAt != nil {
		at := *task.CompletedAt
		task.CompletedAt = &at
	}
	return task
}

func cloneTasks(in []models.Task) []models.Task {
	out := make([]models.Task, len(in))
	for i, task := range in {
		out[i] = cloneTask(task)
	}
	return out
}

