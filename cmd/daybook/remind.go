package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fentz26/daybook/internal/config"
	"github.com/fentz26/daybook/internal/connectors/localexec"
	"github.com/fentz26/daybook/internal/reminder"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send desktop notifications for upcoming events",
	Long: `Polls the calendar and runs the configured notifier for every event
whose reminder time has come. Runs until interrupted unless --once is set.`,
	RunE: runRemind,
}

var remindOnce bool

func init() {
	remindCmd.Flags().BoolVar(&remindOnce, "once", false, "Check once and exit")
}

// newReminder builds the scheduler for a session.
func newReminder(s *session) (*reminder.Scheduler, error) {
	rc := s.cfg.Reminder
	if !localexec.Supported(rc.Command) {
		return nil, fmt.Errorf("reminder command %q is not a supported notifier", rc.Command)
	}
	return reminder.New(
		s.state.Events,
		localexec.New(""),
		reminderConfig(rc),
		func() bool { return s.state.Prefs.Settings().Notifications },
	), nil
}

func reminderConfig(rc config.ReminderConfig) *reminder.Config {
	return &reminder.Config{Interval: rc.Interval, Command: rc.Command, Args: rc.Args}
}

func runRemind(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		if !s.cfg.Reminder.Enabled {
			return fmt.Errorf("reminders are disabled in the config file")
		}
		sch, err := newReminder(s)
		if err != nil {
			return err
		}

		if remindOnce {
			n := sch.Poll(context.Background())
			fmt.Printf("Sent %d reminders\n", n)
			return nil
		}

		sch.Start()
		fmt.Println("Watching for reminders. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		sch.Stop()
		return nil
	})
}
