package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucaskalb/protest/internal/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate counts, totals, and oldest/newest timestamps across the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := openStore()
		s, err := fs.Stats()
		if err != nil {
			return err
		}

		fmt.Println(render.Header.Render("failure store stats"))
		fmt.Printf("  tests:      %d\n", s.TestCount)
		fmt.Printf("  snapshots:  %d\n", s.SnapshotCount)
		if s.Oldest != nil {
			fmt.Printf("  oldest:     %s\n", s.Oldest.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		}
		if s.Newest != nil {
			fmt.Printf("  newest:     %s\n", s.Newest.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		}
		return nil
	},
}
