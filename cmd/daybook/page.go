package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fentz26/daybook/internal/models"
	"github.com/fentz26/daybook/internal/planner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage task pages",
}

var pageAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a page",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPageAdd,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages",
	RunE:  runPageList,
}

var pageEditCmd = &cobra.Command{
	Use:   "edit [page]",
	Short: "Rename or recolor a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageEdit,
}

var pageRmCmd = &cobra.Command{
	Use:   "rm [page]",
	Short: "Delete a page; its tasks become unfiled",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageRm,
}

var pageMoveCmd = &cobra.Command{
	Use:   "move [page...]",
	Short: "Put pages first in the given order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPageMove,
}

var pageColorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Show the preset accent colors",
	Run: func(cmd *cobra.Command, args []string) {
		for i, c := range models.PageColors {
			fmt.Printf("%s  ", c)
			if (i+1)%6 == 0 {
				fmt.Println()
			}
		}
	},
}

var (
	pageColor string
	pageName  string
)

func init() {
	pageCmd.AddCommand(pageAddCmd, pageListCmd, pageEditCmd, pageRmCmd, pageMoveCmd, pageColorsCmd)
	pageAddCmd.Flags().StringVar(&pageColor, "color", "", "Accent color (#RRGGBB); defaults to the next preset")
	pageEditCmd.Flags().StringVar(&pageColor, "color", "", "New accent color")
	pageEditCmd.Flags().StringVar(&pageName, "name", "", "New name")
}

func runPageAdd(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		page := models.TaskPage{Name: strings.Join(args, " "), AccentColor: pageColor}
		if page.AccentColor == "" {
			page.AccentColor = models.PageColors[len(s.state.Pages.List())%len(models.PageColors)]
		}
		if err := planner.Validate(page); err != nil {
			return err
		}
		p, err := s.state.Pages.Add(page.Name, page.AccentColor)
		if err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Created page: %s %s\n", shortID(p.ID), p.Name)
		return nil
	})
}

func runPageList(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		pages := s.state.Pages.List()
		if len(pages) == 0 {
			fmt.Println("No pages")
			return nil
		}

		counts := make(map[string]int)
		for _, t := range s.state.Tasks.List() {
			counts[t.PageID]++
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Name", "Color", "Tasks"})
		for _, p := range pages {
			t.AppendRow(table.Row{shortID(p.ID), p.Name, p.AccentColor, counts[p.ID]})
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 4, Align: text.AlignRight}})
		t.Render()
		return nil
	})
}

func runPageEdit(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolvePage(s, args[0])
		if err != nil {
			return err
		}
		page, err := s.state.Pages.Get(id)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			page.Name = pageName
		}
		if cmd.Flags().Changed("color") {
			page.AccentColor = pageColor
		}
		if err := planner.Validate(*page); err != nil {
			return err
		}
		if _, err := s.state.Pages.Update(*page); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Updated page: %s\n", page.Name)
		return nil
	})
}

func runPageRm(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		id, err := resolvePage(s, args[0])
		if err != nil {
			return err
		}
		orphans := len(s.state.View(planner.Filter{PageID: id}))
		if err := s.state.Pages.Delete(id); err != nil {
			return warnPersist(err)
		}
		fmt.Printf("Page deleted; %d tasks are now unfiled\n", orphans)
		return nil
	})
}

func runPageMove(cmd *cobra.Command, args []string) error {
	return withSession(func(s *session) error {
		ids := make([]string, len(args))
		for i, ref := range args {
			id, err := resolvePage(s, ref)
			if err != nil {
				return err
			}
			ids[i] = id
		}
		if err := s.state.Pages.Reorder(ids); err != nil {
			return warnPersist(err)
		}
		for _, p := range s.state.Pages.List() {
			fmt.Printf("%d. %s\n", p.Order+1, p.Name)
		}
		return nil
	})
}
