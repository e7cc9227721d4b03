package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show preferences",
	RunE:  runSettings,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a preference (dark-mode, notifications, language, theme, font-size, reminder)",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettings(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		p := s.state.Prefs
		st := p.Settings()
		lang := p.Language()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Key", "Value"})
		t.AppendRows([]table.Row{
			{"dark-mode", st.DarkMode},
			{"notifications", st.Notifications},
			{"language", fmt.Sprintf("%s (%s)", lang.Code, lang.Name)},
			{"theme", p.Theme()},
			{"font-size", p.FontSize()},
			{"reminder", fmt.Sprintf("%d min", p.ReminderDefault())},
		})
		t.Render()
		return nil
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	return withSession(func(s *session) error {
		p := s.state.Prefs
		var err error
		switch key {
		case "dark-mode", "notifications":
			on, perr := strconv.ParseBool(value)
			if perr != nil {
				return fmt.Errorf("%s takes true or false", key)
			}
			if key == "dark-mode" {
				err = p.SetDarkMode(on)
			} else {
				err = p.SetNotifications(on)
			}
		case "language":
			var l planner.Language
			l, err = p.SetLanguage(value)
			value = fmt.Sprintf("%s (%s)", l.Code, l.Name)
		case "theme":
			err = p.SetTheme(value)
		case "font-size":
			err = p.SetFontSize(models.FontSize(value))
		case "reminder":
			n, perr := strconv.Atoi(value)
			if perr != nil {
				return fmt.Errorf("reminder takes minutes")
			}
			err = p.SetReminderDefault(n)
		default:
			return fmt.Errorf("unknown setting %q", key)
		}
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("%s = %s\n", key, value)
		return nil
	})
}
