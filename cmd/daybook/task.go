package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task between completed and pending",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var taskDupCmd = &cobra.Command{
	Use:   "dup [task-id]",
	Short: "Duplicate a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDup,
}

var taskFocusCmd = &cobra.Command{
	Use:   "focus [task-id]",
	Short: "Toggle a task in or out of focus",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskFocus,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move [task-id...]",
	Short: "Move tasks to the top of the list in the given order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskMove,
}

var taskSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search task titles, descriptions and notes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskSearch,
}

var taskSubCmd = &cobra.Command{
	Use:   "sub [task-id] [title]",
	Short: "Add a subtask",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskSub,
}

var taskCheckCmd = &cobra.Command{
	Use:   "check [task-id] [n]",
	Short: "Toggle the n-th subtask",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskCheck,
}

var (
	taskDesc     string
	taskNotes    string
	taskCategory string
	taskPriority string
	taskDue      string
	taskTime     string
	taskRepeat   string
	taskPage     string
	taskSubtasks []string
	taskTitle    string

	listPage     string
	listStatus   string
	listDue      string
	listFocus    bool
	listCategory string
	listSearch   string
)

func init() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskDoneCmd, taskRmCmd, taskDupCmd,
		taskFocusCmd, taskEditCmd, taskMoveCmd, taskSearchCmd, taskSubCmd, taskCheckCmd)

	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskDesc, "desc", "", "Task description")
		c.Flags().StringVar(&taskNotes, "notes", "", "Task notes")
		c.Flags().StringVarP(&taskCategory, "category", "c", string(models.CategoryPersonal), "Category (work, personal, health, other)")
		c.Flags().StringVarP(&taskPriority, "priority", "p", string(models.PriorityMedium), "Priority (high, medium, low)")
		c.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD, today, tomorrow)")
		c.Flags().StringVar(&taskTime, "time", "", "Due time (HH:MM)")
		c.Flags().StringVar(&taskRepeat, "repeat", string(models.RepeatNone), "Repeat (none, daily, weekly, monthly)")
		c.Flags().StringVar(&taskPage, "page", "", "Page name or id")
	}
	taskAddCmd.Flags().StringArrayVar(&taskSubtasks, "sub", nil, "Subtask title (repeatable)")
	taskEditCmd.Flags().StringVar(&taskTitle, "title", "", "New title")

	taskListCmd.Flags().StringVar(&listPage, "page", "", "Page name or id, or - for unfiled tasks")
	taskListCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, completed)")
	taskListCmd.Flags().StringVar(&listDue, "due", "", "Only tasks due on this date")
	taskListCmd.Flags().BoolVar(&listFocus, "focus", false, "Only incomplete focus tasks")
	taskListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	taskListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Filter by text")
}

func resolveTask(s *session, ref string) (string, error) {
	return resolveID("task", s.state.Tasks.List(), func(t models.Task) string { return t.ID }, ref)
}

func resolvePage(s *session, ref string) (string, error) {
	pages := s.state.Pages.List()
	for _, p := range pages {
		if strings.EqualFold(p.Name, ref) {
			return p.ID, nil
		}
	}
	return resolveID("page", pages, func(p models.TaskPage) string { return p.ID }, ref)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		draft, err := readDraft(s, strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, title := range taskSubtasks {
			draft.Subtasks = append(draft.Subtasks, models.Subtask{Title: title})
		}
		if err := planner.Validate(draft); err != nil {
			return err
		}

		t, err := s.state.Tasks.Add(draft)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Created task: %s (+%d points when done)\n", shortID(t.ID), t.Points)
		return nil
	})
}

// readDraft builds a draft from the add/edit flags.
func readDraft(s *session, title string) (models.TaskDraft, error) {
	draft := models.TaskDraft{
		Title:       title,
		Description: taskDesc,
		Notes:       taskNotes,
		Category:    models.Category(taskCategory),
		Priority:    models.Priority(taskPriority),
		DueTime:     taskTime,
		Repeat:      models.Repeat(taskRepeat),
	}
	due, err := models.ParseDate(taskDue, s.state.Now())
	if err != nil {
		return draft, err
	}
	draft.DueDate = due
	if taskPage != "" {
		id, err := resolvePage(s, taskPage)
		if err != nil {
			return draft, err
		}
		draft.PageID = id
	}
	return draft, nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		f := planner.Filter{
			Status:   planner.Status(listStatus),
			Focus:    listFocus,
			Category: models.Category(listCategory),
			Query:    listSearch,
		}
		switch f.Status {
		case planner.StatusAll, planner.StatusPending, planner.StatusCompleted:
		default:
			return fmt.Errorf("invalid status %q (pending, completed)", listStatus)
		}
		if listPage == planner.Unfiled {
			f.PageID = planner.Unfiled
		} else if listPage != "" {
			id, err := resolvePage(s, listPage)
			if err != nil {
				return err
			}
			f.PageID = id
		}
		due, err := models.ParseDate(listDue, s.state.Now())
		if err != nil {
			return err
		}
		f.Due = due

		printTasks(s, s.state.View(f))
		if listFocus {
			fmt.Printf("%d of %d focus slots free\n", s.state.Tasks.FocusSlotsLeft(), s.state.FocusLimit())
		}
		return nil
	})
}

func printTasks(s *session, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "", "Title", "Priority", "Category", "Due", "Page", "Points"})
	for _, task := range tasks {
		mark := " "
		if task.Completed {
			mark = "✓"
		} else if task.IsFocus {
			mark = "★"
		}
		due := task.DueDate.String()
		if task.DueTime != "" {
			due += " " + task.DueTime
		}
		page := ""
		if p, ok := s.state.Pages.Resolve(task.PageID); ok {
			page = p.Name
		}
		t.AppendRow(table.Row{shortID(task.ID), mark, task.Title, task.Priority.Label(), task.Category.Label(), due, page, task.Points})
	}
	t.Render()
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Get(id)
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", task.ID)
		fmt.Printf("Title:       %s\n", task.Title)
		fmt.Printf("Category:    %s\n", task.Category.Label())
		fmt.Printf("Priority:    %s (%d points)\n", task.Priority.Label(), task.Points)
		if !task.DueDate.IsZero() {
			fmt.Printf("Due:         %s %s\n", task.DueDate, task.DueTime)
		}
		if task.Repeat != models.RepeatNone {
			fmt.Printf("Repeat:      %s\n", task.Repeat)
		}
		if p, ok := s.state.Pages.Resolve(task.PageID); ok {
			fmt.Printf("Page:        %s\n", p.Name)
		}
		fmt.Printf("Focus:       %t\n", task.IsFocus)
		if task.Completed {
			fmt.Printf("Completed:   %s\n", task.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Printf("Created:     %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04"))
		if task.Description != "" {
			fmt.Printf("\n%s\n", task.Description)
		}
		if task.Notes != "" {
			fmt.Printf("\nNotes: %s\n", task.Notes)
		}
		if len(task.Subtasks) > 0 {
			fmt.Println("\nSubtasks:")
			for i, st := range task.Subtasks {
				mark := " "
				if st.Completed {
					mark = "x"
				}
				fmt.Printf("  %d. [%s] %s\n", i+1, mark, st.Title)
			}
		}
		return nil
	})
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Complete(id)
		if err != nil {
			return warnPersist(err)
		}
		if task.Completed {
			fmt.Printf("🎉 Completed %q: +%d points (total %d)\n", task.Title, task.Points, s.state.Ledger.Total())
		} else {
			fmt.Printf("Reopened %q: -%d points (total %d)\n", task.Title, task.Points, s.state.Ledger.Total())
		}
		return nil
	})
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Delete(id)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Deleted %q\n", task.Title)
		return nil
	})
}

func runTaskDup(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Duplicate(id)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Created task: %s %q\n", shortID(task.ID), task.Title)
		return nil
	})
}

func runTaskFocus(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.ToggleFocus(id)
		if errors.Is(err, planner.ErrFocusCapacity) {
			return fmt.Errorf("focus is full (%d/%d): finish or unfocus a task first", s.state.FocusLimit(), s.state.FocusLimit())
		}
		if err != nil {
			return warnPersist(err)
		}
		if task.IsFocus {
			fmt.Printf("★ %q is in focus (%d slots left)\n", task.Title, s.state.Tasks.FocusSlotsLeft())
		} else {
			fmt.Printf("%q left focus\n", task.Title)
		}
		return nil
	})
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Get(id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			task.Title = taskTitle
		}
		if flags.Changed("desc") {
			task.Description = taskDesc
		}
		if flags.Changed("notes") {
			task.Notes = taskNotes
		}
		if flags.Changed("category") {
			task.Category = models.Category(taskCategory)
		}
		if flags.Changed("priority") {
			task.Priority = models.Priority(taskPriority)
		}
		if flags.Changed("due") {
			if task.DueDate, err = models.ParseDate(taskDue, s.state.Now()); err != nil {
				return err
			}
		}
		if flags.Changed("time") {
			task.DueTime = taskTime
		}
		if flags.Changed("repeat") {
			task.Repeat = models.Repeat(taskRepeat)
		}
		if flags.Changed("page") {
			task.PageID = ""
			if taskPage != "" && taskPage != planner.Unfiled {
				if task.PageID, err = resolvePage(s, taskPage); err != nil {
					return err
				}
			}
		}

		draft := models.TaskDraft{
			Title:       task.Title,
			Description: task.Description,
			Category:    task.Category,
			Priority:    task.Priority,
			DueTime:     task.DueTime,
			Repeat:      task.Repeat,
			Subtasks:    task.Subtasks,
		}
		if err := planner.Validate(draft); err != nil {
			return err
		}

		if _, err := s.state.Tasks.Update(*task); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Updated task: %s\n", shortID(task.ID))
		return nil
	})
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		ids := make([]string, len(args))
		for i, ref := range args {
			id, err := resolveTask(s, ref)
			if err != nil {
				return err
			}
			ids[i] = id
		}
		if err := moveToTop(s.state, ids); err != nil {
			return warnPersist(err)
		}
		printTasks(s, s.state.View(planner.Filter{}))
		return nil
	})
}

// moveToTop puts ids first, in the given order, and renumbers every
// other task after them in its current order.
func moveToTop(state *planner.State, ids []string) error {
	order := append([]string(nil), ids...)
	named := make(map[string]bool, len(ids))
	for _, id := range ids {
		named[id] = true
	}
	for _, t := range state.View(planner.Filter{}) {
		if !named[t.ID] {
			order = append(order, t.ID)
		}
	}
	return state.Tasks.Reorder(order)
}

func runTaskSearch(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		printTasks(s, planner.Search(s.state.Tasks.List(), strings.Join(args, " ")))
		return nil
	})
}

func runTaskSub(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Get(id)
		if err != nil {
			return err
		}
		sub := models.Subtask{Title: strings.Join(args[1:], " ")}
		if err := planner.Validate(sub); err != nil {
			return err
		}
		task.Subtasks = append(task.Subtasks, sub)
		if _, err := s.state.Tasks.Update(*task); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Added subtask %d to %q\n", len(task.Subtasks), task.Title)
		return nil
	})
}

func runTaskCheck(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveTask(s, args[0])
		if err != nil {
			return err
		}
		task, err := s.state.Tasks.Get(id)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(task.Subtasks) {
			return fmt.Errorf("subtask must be a number from 1 to %d", len(task.Subtasks))
		}
		task, err = s.state.Tasks.ToggleSubtask(id, task.Subtasks[n-1].ID)
		if err != nil {
			return warnPersist(err)
		}
		st := task.Subtasks[n-1]
		fmt.Printf("[%s] %s\n", map[bool]string{true: "x", false: " "}[st.Completed], st.Title)
		return nil
	})
}
