package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucaskalb/protest/internal/render"
	"github.com/lucaskalb/protest/quick"
)

var showDiff bool

var showCmd = &cobra.Command{
	Use:   "show <test_name>",
	Short: "Dump every persisted snapshot for a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testName := args[0]
		fs := openStore()
		snaps, err := fs.LoadAll(testName)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println(render.WarningText.Render(fmt.Sprintf("no snapshots for %q", testName)))
			return nil
		}

		fmt.Println(render.Header.Render(testName))
		for i, s := range snaps {
			fmt.Printf("  %s seed=%d shrink_steps=%d %s\n",
				render.Muted.Render(s.Timestamp.Format("2006-01-02T15:04:05Z07:00")),
				s.Seed, s.ShrinkSteps,
				render.Muted.Render("input:"))
			fmt.Printf("    %s\n", render.Code.Render(s.Input))
			fmt.Printf("    %s\n", render.ErrorText.Render(s.ErrorMessage))

			if showDiff && i > 0 {
				if diff := quick.DiffLines(snaps[i-1].Input, s.Input); diff != "" {
					fmt.Printf("    %s\n", render.Muted.Render("diff vs previous seed:"))
					fmt.Printf("%s\n", render.Code.Render(diff))
				}
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showDiff, "diff", false, "Show a go-cmp diff of each snapshot's input against the previous one")
}
