package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent changes and their outcomes",
	RunE:  runActivity,
}

var activityLimit int

func init() {
	activityCmd.Flags().IntVarP(&activityLimit, "limit", "n", 20, "Number of entries")
}

func runActivity(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		items, err := s.rec.Recent(activityLimit)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No activity recorded")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Time", "Action", "Outcome", "Entity", "Details"})
		for _, a := range items {
			t.AppendRow(table.Row{a.Timestamp.Local().Format("2006-01-02 15:04:05"), a.Action, a.Outcome, shortID(a.EntityID), a.Details})
		}
		t.Render()
		return nil
	})
}
