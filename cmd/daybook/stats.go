package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progress, the week's completions and mood distribution",
	RunE:  runStats,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show points and streak",
	RunE:  runStreak,
}

var streakSetCmd = &cobra.Command{
	Use:   "set [days]",
	Short: "Set the streak counter",
	Args:  cobra.ExactArgs(1),
	RunE:  runStreakSet,
}

func init() {
	streakCmd.AddCommand(streakSetCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		st := s.state.Stats()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendRows([]table.Row{
			{"Tasks", st.Total},
			{"Completed", st.Completed},
			{"Pending", st.Pending},
			{"Points", st.Points},
			{"Streak", fmt.Sprintf("%d days", st.Streak)},
			{"Productivity", fmt.Sprintf("%d%%", st.Productivity)},
		})
		t.Render()

		fmt.Println("\nThis week")
		for _, d := range st.Week {
			label := d.Date.Time(s.state.Now().Location()).Format("Mon")
			if d.IsToday {
				label += "*"
			}
			fmt.Printf("  %-4s %s %d\n", label, strings.Repeat("█", d.Completed), d.Completed)
		}

		fmt.Println("\nCompleted by category")
		for _, c := range models.Categories {
			fmt.Printf("  %-9s %d\n", c.Label(), st.Categories[c])
		}

		if st.MoodTotal > 0 {
			fmt.Println("\nRecent moods")
			for _, m := range models.Moods {
				n := st.Moods[m]
				fmt.Printf("  %s %-9s %3d%%\n", m.Emoji(), m.Label(), n*100/st.MoodTotal)
			}
		}
		return nil
	})
}

func runStreak(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		fmt.Printf("🔥 %d day streak\n⭐ %d points\n", s.state.Ledger.Streak(), s.state.Ledger.Total())
		if derived := s.state.Ledger.Derived(); derived != s.state.Ledger.Total() {
			fmt.Printf("(completed tasks account for %d points)\n", derived)
		}
		return nil
	})
}

func runStreakSet(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("streak must be a whole number: %w", err)
	}
	return withSession(func(s *session) error {
		if err := s.state.Ledger.SetStreak(n); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("🔥 Streak set to %d\n", n)
		return nil
	})
}
