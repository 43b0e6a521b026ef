package main

import (
	"os"

	"github.com/BurntSushi/toml"
)

// fileConfig is the optional on-disk CLI config, read from .protest.toml in
// the current directory (or $PROTEST_CONFIG). Flags always win over it;
// it only supplies defaults for a flag the user didn't pass.
type fileConfig struct {
	FailuresDir string `toml:"failures_dir"`
	Verbose     bool   `toml:"verbose"`
}

// loadFileConfig reads the CLI's config file, if one exists. A missing
// file is not an error — the CLI works fine with flags and environment
// variables alone.
func loadFileConfig() (fileConfig, error) {
	path := os.Getenv("PROTEST_CONFIG")
	if path == "" {
		path = ".protest.toml"
	}

	var fc fileConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fc, nil
	}
	_, err := toml.DecodeFile(path, &fc)
	return fc, err
}

// applyFileConfig fills in any flag the user left at its zero value from
// the file config, so .protest.toml acts as a defaults layer underneath
// explicit --flags.
func applyFileConfig(fc fileConfig) {
	if failuresDir == "" {
		failuresDir = fc.FailuresDir
	}
	if !verbose {
		verbose = fc.Verbose
	}
}
