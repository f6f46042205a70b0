package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isdmx/neusconf/conf"
	"github.com/isdmx/neusconf/config"
)

func newFmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <config-file>",
		Short: "Rewrite a configuration file in canonical form",
		Long: `Load a configuration file (validating it in the process) and emit
its canonical serialization: sorted keys, groups after scalars, two-space
indentation. The output reparses to an identical record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := config.Load(path)
			if err != nil {
				return describeLoadError(path, err)
			}

			text, err := conf.Format(cfg.Canonical())
			if err != nil {
				return fmt.Errorf("serializing config: %w", err)
			}

			if write {
				if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")
	return cmd
}
