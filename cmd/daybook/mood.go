package main

import (
	"fmt"
	"os"

	"github.com/fentz26/daybook/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var moodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Track how you feel, once per day",
}

var moodSetCmd = &cobra.Command{
	Use:   "set [amazing|good|okay|bad|terrible]",
	Short: "Record today's mood, replacing any earlier entry for today",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoodSet,
}

var moodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's mood",
	RunE:  runMoodToday,
}

var moodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mood entries",
	RunE:  runMoodList,
}

var moodRmCmd = &cobra.Command{
	Use:   "rm [mood-id]",
	Short: "Delete a mood entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runMoodRm,
}

var moodNote string

func init() {
	moodCmd.AddCommand(moodSetCmd, moodTodayCmd, moodListCmd, moodRmCmd)
	moodSetCmd.Flags().StringVarP(&moodNote, "note", "n", "", "A note about the day")
}

func runMoodSet(cmd *cobra.Command, args []string) error {
	mood, err := models.ParseMood(args[0])
	if err != nil {
		return err
	}
	return withSession(func(s *session) error {
		done := s.state.Tasks.CompletedOn(models.Today(s.state.Now()))
		e, err := s.state.Moods.Record(mood, moodNote, done)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("%s Feeling %s today (%d tasks done)\n", e.Mood.Emoji(), e.Mood.Label(), len(e.CompletedTaskIDs))
		return nil
	})
}

func runMoodToday(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		e, ok := s.state.Moods.Today()
		if !ok {
			fmt.Println("No mood recorded today")
			return nil
		}
		fmt.Printf("%s %s", e.Mood.Emoji(), e.Mood.Label())
		if e.Note != "" {
			fmt.Printf(": %s", e.Note)
		}
		fmt.Println()
		return nil
	})
}

func runMoodList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		entries := s.state.Moods.List()
		if len(entries) == 0 {
			fmt.Println("No moods recorded")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Date", "Mood", "Tasks Done", "Note"})
		for _, e := range entries {
			t.AppendRow(table.Row{shortID(e.ID), e.Date.Local().Format("2006-01-02"), e.Mood.Emoji() + " " + e.Mood.Label(), len(e.CompletedTaskIDs), e.Note})
		}
		t.Render()
		return nil
	})
}

func runMoodRm(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveID("mood", s.state.Moods.List(), func(e models.MoodEntry) string { return e.ID }, args[0])
		if err != nil {
			return err
		}
		if err := s.state.Moods.Delete(id); err != nil {
			return warnPersist(err)
		}
		fmt.Println("Mood entry deleted")
		return nil
	})
}
