// Package main is the entry point for the neusconf command.
//
// neusconf loads, validates, formats and drives the cadence of experiment
// configuration files for NeuS-style implicit-surface reconstruction runs.
// It treats the file as a typed schema: loading fails fast on malformed
// syntax, missing required keys, or out-of-range hyperparameters, before
// any experiment resource is touched.
//
// The run command uses Uber's fx framework for dependency injection and
// lifecycle management, with zap for structured logging and viper for
// configuration merging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "neusconf",
	Short: "Typed configuration toolkit for NeuS-style experiments",
	Long: `neusconf loads, validates, formats and drives the cadence of
experiment configuration files.

A configuration file is a nested key/value document (scalars, [a, b]
sequences, name { ... } groups, # comments) describing the experiment
output directory, the dataset views, the periodic validation cadences,
and the per-network hyperparameters.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(
		newValidateCommand(),
		newShowCommand(),
		newFmtCommand(),
		newRunCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
