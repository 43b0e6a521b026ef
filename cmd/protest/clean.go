package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucaskalb/protest/internal/render"
	"github.com/lucaskalb/protest/quick"
	"github.com/lucaskalb/protest/store"
)

var (
	cleanSeed    string
	cleanConfirm bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [test_name]",
	Short: "Remove one snapshot, all snapshots for a test, or the entire store",
	Long: `clean removes persisted failures:

  protest clean                 remove the entire store
  protest clean <test_name>     remove every snapshot for that test
  protest clean <test_name> --seed N   remove just that one snapshot

Destructive removals prompt for confirmation unless -y is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := openStore()

		var testName string
		if len(args) == 1 {
			testName = args[0]
		}

		if cleanSeed != "" && testName == "" {
			return usageError{fmt.Errorf("--seed requires a test_name")}
		}

		desc := describeCleanTarget(testName, cleanSeed)
		if !cleanConfirm {
			if cleanSeed == "" && testName != "" {
				printCleanPreview(fs, testName)
			}
			if !confirm(desc) {
				fmt.Println(render.WarningText.Render("aborted"))
				return nil
			}
		}

		if cleanSeed != "" {
			seed, err := store.ParseSeed(cleanSeed)
			if err != nil {
				return usageError{fmt.Errorf("invalid --seed %q: %w", cleanSeed, err)}
			}
			if err := fs.Delete(testName, seed); err != nil {
				return err
			}
		} else if testName != "" {
			if err := fs.DeleteAll(testName); err != nil {
				return err
			}
		} else {
			names, err := fs.ListTests()
			if err != nil {
				return err
			}
			for _, name := range names {
				if err := fs.DeleteAll(name); err != nil {
					return err
				}
			}
		}

		fmt.Println(render.SuccessText.Render("removed " + desc))
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanSeed, "seed", "", "Remove only the snapshot for this seed")
	cleanCmd.Flags().BoolVarP(&cleanConfirm, "yes", "y", false, "Skip the confirmation prompt")
}

func describeCleanTarget(testName, seed string) string {
	switch {
	case seed != "":
		return fmt.Sprintf("snapshot seed=%s for %q", seed, testName)
	case testName != "":
		return fmt.Sprintf("all snapshots for %q", testName)
	default:
		return "the entire failure store"
	}
}

// printCleanPreview dumps what a no-seed `clean <test_name>` is about to
// discard: the oldest and newest surviving snapshot's inputs, diffed, so the
// operator can see how much the counterexample drifted before confirming
// the whole history for that test is gone.
func printCleanPreview(fs *store.FailureStore, testName string) {
	snaps, err := fs.LoadAll(testName)
	if err != nil || len(snaps) == 0 {
		return
	}
	fmt.Printf("  %s %d snapshot(s) will be removed\n", render.Muted.Render("about to delete:"), len(snaps))
	if len(snaps) < 2 {
		return
	}
	oldest, newest := snaps[0], snaps[len(snaps)-1]
	if diff := quick.DiffLines(oldest.Input, newest.Input); diff != "" {
		fmt.Println(render.Muted.Render("  diff, oldest vs newest surviving input:"))
		fmt.Printf("%s\n", render.Code.Render(diff))
	}
}

// confirm prompts the user with a y/N question on stdin. There is no
// library in the corpus for this — a single yes/no read is simple enough
// that reaching for one would add a dependency for no real benefit.
func confirm(action string) bool {
	fmt.Printf("remove %s? [y/N] ", action)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
