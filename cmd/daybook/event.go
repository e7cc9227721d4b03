package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a calendar event",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE:  runEventList,
}

var eventEditCmd = &cobra.Command{
	Use:   "edit [event-id]",
	Short: "Edit an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventEdit,
}

var eventRmCmd = &cobra.Command{
	Use:   "rm [event-id]",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventRm,
}

var agendaCmd = &cobra.Command{
	Use:   "agenda [date]",
	Short: "Show the events and tasks of one day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAgenda,
}

var (
	eventDate     string
	eventStart    string
	eventEnd      string
	eventAllDay   bool
	eventLocation string
	eventDesc     string
	eventReminder int
	eventTitle    string
	eventListDate string
)

func init() {
	eventCmd.AddCommand(eventAddCmd, eventListCmd, eventEditCmd, eventRmCmd, agendaCmd)

	for _, c := range []*cobra.Command{eventAddCmd, eventEditCmd} {
		c.Flags().StringVar(&eventDate, "date", "today", "Date (YYYY-MM-DD, today, tomorrow)")
		c.Flags().StringVar(&eventStart, "start", "", "Start time (HH:MM)")
		c.Flags().StringVar(&eventEnd, "end", "", "End time (HH:MM)")
		c.Flags().BoolVar(&eventAllDay, "all-day", false, "All-day event")
		c.Flags().StringVar(&eventLocation, "location", "", "Location")
		c.Flags().StringVar(&eventDesc, "desc", "", "Description")
		c.Flags().IntVar(&eventReminder, "reminder", -1, "Reminder lead time in minutes (default from settings, 0 disables)")
	}
	eventEditCmd.Flags().StringVar(&eventTitle, "title", "", "New title")
	eventListCmd.Flags().StringVar(&eventListDate, "date", "", "Only events on this date")
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		day, err := models.ParseDate(eventDate, s.state.Now())
		if err != nil {
			return err
		}
		ev := models.CalendarEvent{
			Title:       strings.Join(args, " "),
			Description: eventDesc,
			Date:        day,
			StartTime:   eventStart,
			EndTime:     eventEnd,
			AllDay:      eventAllDay,
			Location:    eventLocation,
			Reminder:    eventReminder,
		}
		if ev.Reminder < 0 {
			ev.Reminder = s.state.Prefs.ReminderDefault()
		}
		if err := planner.ValidateEvent(ev); err != nil {
			return err
		}

		out, err := s.state.Events.Add(ev)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Created event: %s %s on %s\n", shortID(out.ID), out.Title, out.Date)
		return nil
	})
}

func runEventList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		events := s.state.Events.List()
		if eventListDate != "" {
			day, err := models.ParseDate(eventListDate, s.state.Now())
			if err != nil {
				return err
			}
			events = s.state.Events.On(day)
		}
		printEvents(events)
		return nil
	})
}

func printEvents(events []models.CalendarEvent) {
	if len(events) == 0 {
		fmt.Println("No events")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Date", "Time", "Title", "Location", "Reminder"})
	for _, ev := range events {
		when := "all day"
		if !ev.AllDay {
			when = ev.StartTime
			if ev.EndTime != "" {
				when += "-" + ev.EndTime
			}
		}
		reminder := ""
		if ev.Reminder > 0 && !ev.AllDay {
			reminder = fmt.Sprintf("%d min", ev.Reminder)
		}
		t.AppendRow(table.Row{shortID(ev.ID), ev.Date.String(), when, ev.Title, ev.Location, reminder})
	}
	t.Render()
}

func resolveEvent(s *session, ref string) (string, error) {
	return resolveID("event", s.state.Events.List(), func(e models.CalendarEvent) string { return e.ID }, ref)
}

func runEventEdit(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveEvent(s, args[0])
		if err != nil {
			return err
		}
		ev, err := s.state.Events.Get(id)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("title") {
			ev.Title = eventTitle
		}
		if flags.Changed("date") {
			if ev.Date, err = models.ParseDate(eventDate, s.state.Now()); err != nil {
				return err
			}
		}
		if flags.Changed("start") {
			ev.StartTime = eventStart
		}
		if flags.Changed("end") {
			ev.EndTime = eventEnd
		}
		if flags.Changed("all-day") {
			ev.AllDay = eventAllDay
		}
		if flags.Changed("location") {
			ev.Location = eventLocation
		}
		if flags.Changed("desc") {
			ev.Description = eventDesc
		}
		if flags.Changed("reminder") {
			ev.Reminder = eventReminder
		}
		if err := planner.ValidateEvent(*ev); err != nil {
			return err
		}

		if _, err := s.state.Events.Update(*ev); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Updated event: %s\n", shortID(ev.ID))
		return nil
	})
}

func runEventRm(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveEvent(s, args[0])
		if err != nil {
			return err
		}
		if err := s.state.Events.Delete(id); err != nil {
			return warnPersist(err)
		}
		fmt.Println("Event deleted")
		return nil
	})
}

func runAgenda(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		ref := "today"
		if len(args) > 0 {
			ref = args[0]
		}
		day, err := models.ParseDate(ref, s.state.Now())
		if err != nil {
			return err
		}

		fmt.Printf("%s\n\n", day.Time(s.state.Now().Location()).Format("Monday, January 2 2006"))
		printEvents(s.state.Events.On(day))
		fmt.Println()
		printTasks(s, s.state.Tasks.DueOn(day))
		return nil
	})
}
