package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/retheme/cmd/retheme/opts"
	"github.com/walteh/retheme/pkg/config"
	"github.com/walteh/retheme/pkg/discover"
	"github.com/walteh/retheme/pkg/log"
	"github.com/walteh/retheme/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

type runFlags struct {
	root      string
	extension string
	markers   []string
	ignore    []string
}

// NewRunCmd creates the run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply the replacement table to every candidate file",
		Long: `Run rewrites candidate files in place.
It will:
1. Walk the root directory and collect files matching the extension and a marker
2. Apply every replacement rule, in order, to each file's text
3. Write back only the files whose text changed
4. Print one line per file and a summary

Per-file errors are reported and skipped; they do not fail the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, opts, flags)
		},
	}

	addRunFlags(cmd, flags)

	return cmd
}

// NewRootRunE returns a RunE that performs a run, along with the flags it
// reads, so the root command can run without naming a subcommand.
func NewRootRunE(cmd *cobra.Command, opts *opts.RootOpts) func(*cobra.Command, []string) error {
	flags := &runFlags{}
	addRunFlags(cmd, flags)
	return func(cmd *cobra.Command, args []string) error {
		return runRewrite(cmd, opts, flags)
	}
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.root, "root", "", "directory to walk (overrides config)")
	cmd.Flags().StringVar(&flags.extension, "ext", "", "required file extension (overrides config)")
	cmd.Flags().StringSliceVar(&flags.markers, "marker", nil, "filename marker, repeatable (overrides config)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "doublestar glob to skip, repeatable (overrides config)")
}

func runRewrite(cmd *cobra.Command, opts *opts.RootOpts, flags *runFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx).With().Str("command", "run").Logger()
	ctx = logger.WithContext(ctx)

	cfg := opts.Config.Merge(&config.Config{
		Root:      flags.root,
		Extension: flags.extension,
		Markers:   flags.markers,
		Ignore:    flags.ignore,
	})
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating flags: %w", err)
	}

	logger.Debug().Stringer("config", cfg).Msg("starting run")

	paths, err := discover.Candidates(ctx, cfg.Root, cfg.Filter())
	if err != nil {
		// an interrupt during the walk is not a setup failure, the run below
		// stops before the first file and still prints its summary
		if ctx.Err() == nil || !errors.Is(err, ctx.Err()) {
			return errors.Errorf("discovering files: %w", err)
		}
		logger.Warn().Err(err).Msg("discovery interrupted")
	}

	console := log.FromContext(ctx)

	rw, err := rewrite.New(rewrite.Options{
		Rules:    cfg.TextRules(),
		Reporter: console,
	})
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	rw.Run(ctx, paths)

	return nil
}
