package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucaskalb/protest/internal/render"
	"github.com/lucaskalb/protest/store"
)

var generateOutDir string

var generateCmd = &cobra.Command{
	Use:   "generate [test_name]",
	Short: "Emit regression-test skeletons that replay every saved seed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var testName string
		if len(args) == 1 {
			testName = args[0]
		}

		gen := store.NewRegressionGenerator(openStore())
		written, err := gen.Generate(testName, generateOutDir)
		if err != nil {
			return err
		}
		if len(written) == 0 {
			fmt.Println(render.WarningText.Render("no snapshots to generate regressions from"))
			return nil
		}
		for _, path := range written {
			fmt.Println(render.SuccessText.Render("wrote " + path))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutDir, "output", "o", "regressions", "Directory to write regression test files into")
}
