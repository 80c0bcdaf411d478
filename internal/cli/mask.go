package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/snapmatch/internal/normalize"
)

// MaskOptions holds flags for the mask command.
type MaskOptions struct {
	*RootOptions
	Exclude []string
}

// NewMaskCommand creates the mask command.
func NewMaskCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MaskOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mask [file]",
		Short: "Print the comparable form of a text payload",
		Long: `Print a text payload with every exclusion pattern replaced by the
excluded sentinel. Patterns come from text_excluding in the config followed
by each --exclude flag, applied in that order.

Example:
  snapmatch mask report.txt --exclude '\d{4}-\d{2}-\d{2}'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runMask(opts, path, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Exclude, "exclude", nil, "regular expression to mask (repeatable)")

	return cmd
}

func runMask(opts *MaskOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	patterns, err := normalize.CompilePatterns(opts.Exclude)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, "invalid flags", fmt.Errorf("--exclude: %w", err))
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, "failed to read input", err)
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return out.Fail(ExitCommandError, CodeConfig, "failed to load config", err)
	}
	defaults, err := cfg.Defaults()
	if err != nil {
		return out.Fail(ExitCommandError, CodeConfig, "invalid config", err)
	}

	masked := normalize.Mask(string(data), normalize.MergePatterns(defaults.TextExcluding, patterns))
	return out.Success(masked)
}
