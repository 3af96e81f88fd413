package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retheme/cmd/retheme/commands"
	"github.com/walteh/retheme/cmd/retheme/opts"
	"github.com/walteh/retheme/pkg/config"
	"github.com/walteh/retheme/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "retheme",
		Short: "Swap CSS utility classes across UI source files",
		Long: `retheme walks a directory of UI source files and applies an ordered table of
literal string replacements to every file whose name matches the configured
extension and markers. The built-in table moves the exercise pages from the
dark theme to the light theme.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, rootOpts)
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.RunE = commands.NewRootRunE(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", "", "config file path (.yaml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setup configures logging and loads the config once flags are parsed
func setup(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	level := zerolog.WarnLevel
	if rootOpts.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()

	ctx := logger.WithContext(cmd.Context())
	ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), logger))

	if rootOpts.ConfigFile == "" {
		rootOpts.Config = config.Default()
	} else {
		cfg, err := config.Load(ctx, rootOpts.ConfigFile)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
		rootOpts.Config = cfg
	}

	cmd.SetContext(ctx)

	return nil
}
