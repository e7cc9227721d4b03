package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daybook",
	Short: "daybook - tasks, moods and a journal in your terminal",
	Long: `daybook is a personal planner. Tasks earn points when completed, up to
three tasks can be in focus, and moods, calendar events and journal
entries live next to them. Run "daybook tui" for the interactive view.`,
	SilenceUsage: true,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath  string
	dataDirFlag string
	backendFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.daybook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: sqlite or file")

	// Add subcommands
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
