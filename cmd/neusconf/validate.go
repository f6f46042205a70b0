package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isdmx/neusconf/conf"
	"github.com/isdmx/neusconf/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Load a configuration file and report the first error found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := config.Load(path); err != nil {
				return describeLoadError(path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return nil
		},
	}
}

// describeLoadError prefixes the path and names the error class the way
// the loader taxonomy does.
func describeLoadError(path string, err error) error {
	var (
		syntaxErr  *conf.SyntaxError
		missingErr *config.MissingKeyError
		rangeErr   *config.RangeError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%s: parse error: %w", path, err)
	case errors.As(err, &missingErr):
		return fmt.Errorf("%s: missing key: %w", path, err)
	case errors.As(err, &rangeErr):
		return fmt.Errorf("%s: range error: %w", path, err)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}
