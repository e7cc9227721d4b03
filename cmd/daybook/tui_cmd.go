package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fentz26/daybook/internal/planner"
	"github.com/fentz26/daybook/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive TUI",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	inbox := tui.NewInbox()
	s, err := openSession(planner.WithSignals(inbox.Send))
	if err != nil {
		return err
	}
	defer s.Close()

	// Log lines would draw over the alt screen.
	logFile, err := os.OpenFile(filepath.Join(s.dir, "daybook.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	if s.cfg.Reminder.Enabled {
		sch, err := newReminder(s)
		if err != nil {
			log.Printf("Reminders off: %v", err)
		} else {
			sch.Start()
			defer sch.Stop()
		}
	}

	app := tui.New(s.state, inbox)
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
