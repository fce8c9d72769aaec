package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/go-drift/hostbridge/cmd/hostbridge/internal/config"
)

func newInitCmd(s *session) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default hostbridge.yaml",
		Long: `Write hostbridge.yaml with default settings into directory, or into the
project root when no directory is given. The application name is derived
from go.mod when present.

Examples:
  hostbridge init
  hostbridge init ./examples/dashboard --force`,
		Args: cobra.MaximumNArgs(1),
		// init writes the configuration, so it must not require a valid one.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := s.dir
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				root, err := config.FindProjectRoot()
				if err != nil {
					return err
				}
				dir = root
			}
			dir = filepath.Clean(dir)

			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("directory %q: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%q is not a directory", dir)
			}

			path, err := config.Write(dir, config.Default(config.DefaultAppName(dir)), force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing hostbridge.yaml")
	return cmd
}
