package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucaskalb/protest/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Enumerate tests with persisted failures and their snapshot counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := openStore()
		names, err := fs.ListTests()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println(render.WarningText.Render("no persisted failures found"))
			return nil
		}

		table := render.NewTable("", "TEST", "SNAPSHOTS")
		for _, name := range names {
			snaps, err := fs.LoadAll(name)
			if err != nil {
				return err
			}
			table.AddRow(name, fmt.Sprintf("%d", len(snaps)))
		}
		fmt.Print(table.View())
		return nil
	},
}
