package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/snapmatch/internal/normalize"
	"github.com/roach88/snapmatch/internal/snapshot"
	"github.com/roach88/snapmatch/internal/value"
)

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	*RootOptions
	Dynamic     []string
	IgnoreOrder []string
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Print the comparable form of a JSON payload",
		Long: `Print the canonical JSON that match compares for a payload.

Dynamic attributes are replaced with the dynamic sentinel and arrays under
ignore-order keys are sorted. Useful for seeing why two payloads differ.

Example:
  snapmatch normalize response.json
  curl -s localhost:8080/orders | snapmatch normalize --ignore-order items`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runNormalize(opts, path, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Dynamic, "dynamic", nil, "additional dynamic attribute names")
	cmd.Flags().StringSliceVar(&opts.IgnoreOrder, "ignore-order", nil, "keys whose arrays compare order-insensitively")

	return cmd
}

func runNormalize(opts *NormalizeOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

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

	v, err := value.Parse(data)
	if err != nil {
		return out.Fail(ExitCommandError, CodeMalformedInput, "malformed input", err)
	}

	resolved := snapshot.Resolve(defaults, snapshot.Options{
		DynamicAttributes: opts.Dynamic,
		IgnoreOrder:       opts.IgnoreOrder,
	})
	rules := normalize.NewRules(resolved.DynamicAttributes(), resolved.IgnoreOrder())

	canonical, err := value.MarshalCanonical(normalize.Tree(v, rules))
	if err != nil {
		return out.Fail(ExitCommandError, CodeMalformedInput, "failed to encode", err)
	}

	if opts.Format == "json" {
		return out.Success(json.RawMessage(canonical))
	}
	return out.Success(string(canonical))
}
