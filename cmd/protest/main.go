// Command protest is the CLI surface around the failure store: it browses
// persisted failures, prints aggregate stats, and emits regression-test
// skeletons. It never runs a property itself — that's the library's job;
// this binary only ever reads and writes the store directory.
//
// Grounded on cmd/nerd/main.go's rootCmd + PersistentPreRunE logger-init
// pattern, trimmed to what a reporting CLI needs (no interactive mode).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucaskalb/protest/store"
)

var (
	verbose    bool
	failuresDir string

	logger *zap.Logger
)

// Exit codes per the CLI surface's contract: 0 success, 1 operation
// failed, 2 invalid arguments.
const (
	exitSuccess = 0
	exitFailed  = 1
	exitUsage   = 2
)

var rootCmd = &cobra.Command{
	Use:   "protest",
	Short: "Browse and manage protest's persisted property-test failures",
	Long: `protest is the CLI companion to the protest property-testing library.

It never generates test cases or runs properties itself — it only reads and
writes the on-disk failure store that the library's prop.Check
populates when a property fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadFileConfig()
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		applyFileConfig(fc)

		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		store.SetLogger(logger.Sugar())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&failuresDir, "failures-dir", "", "Failure store root (default: $PROTEST_FAILURES_DIR or .protest/failures)")

	rootCmd.AddCommand(listCmd, showCmd, cleanCmd, statsCmd, generateCmd)
}

// openStore resolves the --failures-dir flag (falling back to the
// package default, which itself honors PROTEST_FAILURES_DIR) into a
// *store.FailureStore.
func openStore() *store.FailureStore {
	return store.NewFailureStore(failuresDir)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "[protest] error:", err)
		if _, ok := err.(usageError); ok {
			os.Exit(exitUsage)
		}
		os.Exit(exitFailed)
	}
}

// usageError marks an error that should exit with exitUsage rather than
// exitFailed (invalid arguments, not a failed operation).
type usageError struct{ error }
