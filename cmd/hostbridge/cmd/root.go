// Package cmd implements the hostbridge CLI commands.
//
// The root command resolves configuration once, before any subcommand
// runs, and hands the result to subcommands through a session.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/go-drift/hostbridge/cmd/hostbridge/internal/config"
	"github.com/go-drift/hostbridge/pkg/codec"
	"github.com/go-drift/hostbridge/pkg/errors"
	"github.com/go-drift/hostbridge/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// session carries the resolved configuration to subcommands.
type session struct {
	dir      string
	logLevel string
	verbose  bool

	cfg    *config.Resolved
	logger *slog.Logger
}

// NewRootCmd builds the command tree. Each call returns independent flag
// state.
func NewRootCmd() *cobra.Command {
	s := &session{}

	root := &cobra.Command{
		Use:   "hostbridge",
		Short: "Preview typed components on an in-memory host",
		Long: `hostbridge renders the bundled demo components on an in-memory host,
replays clicks against them and prints the committed document.

Settings are read from hostbridge.yaml in the project root and may be
overridden with HOSTBRIDGE_* environment variables or flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&s.dir, "dir", "", "project directory (default: nearest go.mod)")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "include stack traces in error logs")

	root.AddCommand(newPreviewCmd(s))
	root.AddCommand(newListCmd(s))
	root.AddCommand(newInitCmd(s))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func (s *session) setup(cmd *cobra.Command) error {
	dir := s.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	if s.logLevel != "" {
		level, err := logging.ParseLevel(s.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = s.verbose
	}

	s.cfg = cfg
	s.logger = logging.New(cmd.ErrOrStderr(), logging.Options{Level: cfg.LogLevel})
	errors.SetHandler(&errors.LogHandler{Logger: s.logger, Verbose: cfg.Verbose})
	codec.DefaultFormat = cfg.Codec

	s.logger.Debug("config resolved",
		"root", cfg.Root,
		"app", cfg.AppName,
		"container", cfg.Container,
		"codec", cfg.Codec.Name(),
		"strict_slots", cfg.StrictSlots,
	)
	return nil
}
