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

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write journal entries; #hashtags become tags",
}

var journalAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Write a new entry",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJournalAdd,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries",
	RunE:  runJournalList,
}

var journalEditCmd = &cobra.Command{
	Use:   "edit [entry-id] [text]",
	Short: "Replace the text of an entry",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runJournalEdit,
}

var journalRmCmd = &cobra.Command{
	Use:   "rm [entry-id]",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRm,
}

var (
	journalMood string
	journalTag  string
)

func init() {
	journalCmd.AddCommand(journalAddCmd, journalListCmd, journalEditCmd, journalRmCmd)
	journalAddCmd.Flags().StringVar(&journalMood, "mood", "", "Mood for the entry")
	journalListCmd.Flags().StringVar(&journalTag, "tag", "", "Only entries with this tag")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		entry := models.JournalEntry{Text: strings.Join(args, " "), Mood: models.Mood(journalMood)}
		if err := planner.Validate(entry); err != nil {
			return err
		}
		e, err := s.state.Journal.Add(entry.Text, entry.Mood)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Saved entry %s", shortID(e.ID))
		if len(e.Tags) > 0 {
			fmt.Printf(" #%s", strings.Join(e.Tags, " #"))
		}
		fmt.Println()
		return nil
	})
}

func runJournalList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		entries := s.state.Journal.List()
		if journalTag != "" {
			entries = s.state.Journal.Tagged(journalTag)
		}
		if len(entries) == 0 {
			fmt.Println("No journal entries")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Date", "Mood", "Text", "Tags"})
		for _, e := range entries {
			mood := ""
			if e.Mood != "" {
				mood = e.Mood.Emoji()
			}
			t.AppendRow(table.Row{shortID(e.ID), e.Date.Local().Format("2006-01-02 15:04"), mood, e.Text, strings.Join(e.Tags, ", ")})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, WidthMax: 60}})
		t.Render()
		return nil
	})
}

func runJournalEdit(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveID("journal entry", s.state.Journal.List(), func(e models.JournalEntry) string { return e.ID }, args[0])
		if err != nil {
			return err
		}
		entry, err := s.state.Journal.Get(id)
		if err != nil {
			return err
		}
		entry.Text = strings.Join(args[1:], " ")
		if err := planner.Validate(*entry); err != nil {
			return err
		}
		e, err := s.state.Journal.Update(*entry)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Updated entry %s (tags: %s)\n", shortID(e.ID), strings.Join(e.Tags, ", "))
		return nil
	})
}

func runJournalRm(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolveID("journal entry", s.state.Journal.List(), func(e models.JournalEntry) string { return e.ID }, args[0])
		if err != nil {
			return err
		}
		if err := s.state.Journal.Delete(id); err != nil {
			return warnPersist(err)
		}
		fmt.Println("Journal entry deleted")
		return nil
	})
}
