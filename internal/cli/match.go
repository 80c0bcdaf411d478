package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/snapmatch/internal/handler"
	"github.com/roach88/snapmatch/internal/normalize"
	"github.com/roach88/snapmatch/internal/snapshot"
)

// MatchOptions holds flags for the match command.
type MatchOptions struct {
	*RootOptions
	SnapshotFormat string
	Dynamic        []string
	IgnoreOrder    []string
	Exclude        []string
	Update         bool
}

// MatchResult is the outcome of one match command.
type MatchResult struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Outcome string `json:"outcome"`
	Pass    bool   `json:"pass"`
}

func (r MatchResult) String() string {
	return fmt.Sprintf("%s %s", r.Outcome, r.Key)
}

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "match <name> [file]",
		Short: "Match a payload against a named snapshot",
		Long: `Match a JSON or text payload against the snapshot called <name>.

The payload is read from [file], or from stdin when [file] is omitted or "-".
A missing snapshot is created from the payload. A mismatch exits with status 1.

Example:
  curl -s localhost:8080/users/1 | snapmatch match api/user
  snapmatch match api/orders orders.json --ignore-order items --dynamic token
  snapmatch match api/report report.txt --snapshot-format text --exclude '\d{4}-\d{2}-\d{2}'`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			return runMatch(opts, args[0], path, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SnapshotFormat, "snapshot-format", "", "snapshot format (json|text), defaults to the config")
	cmd.Flags().StringSliceVar(&opts.Dynamic, "dynamic", nil, "additional dynamic attribute names")
	cmd.Flags().StringSliceVar(&opts.IgnoreOrder, "ignore-order", nil, "keys whose arrays compare order-insensitively")
	cmd.Flags().StringArrayVar(&opts.Exclude, "exclude", nil, "regular expression masked in text comparisons (repeatable)")
	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite the snapshot when it does not match")

	return cmd
}

func runMatch(opts *MatchOptions, name, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	logger := newLogger(opts.RootOptions, cmd)

	callOpts, err := opts.snapshotOptions()
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, "invalid flags", err)
	}

	actual, err := readInput(cmd, path)
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

	st, closer, err := cfg.OpenStore(logger)
	if err != nil {
		return out.Fail(ExitCommandError, CodeStore, "failed to open snapshot store", err)
	}
	defer closer.Close()

	matcher := snapshot.NewMatcher(st, defaults, logger)
	key, err := matcher.Key(name, callOpts)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, "invalid snapshot format", err)
	}

	outcome, err := matcher.Match(cmd.Context(), actual, name, callOpts)
	if err != nil {
		if handler.IsMalformedInput(err) {
			return out.Fail(ExitCommandError, CodeMalformedInput, "malformed input", err)
		}
		return out.Fail(ExitCommandError, CodeStore, "snapshot store failure", err)
	}

	result := MatchResult{
		Name:    name,
		Key:     key,
		Outcome: string(outcome),
		Pass:    outcome.Pass(),
	}
	if !result.Pass {
		message := fmt.Sprintf("snapshot %s does not match", key)
		if err := out.Error(CodeMismatch, message, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	return out.Success(result)
}

func (o *MatchOptions) snapshotOptions() (snapshot.Options, error) {
	var callOpts snapshot.Options
	if o.SnapshotFormat != "" {
		f, err := handler.ParseFormat(o.SnapshotFormat)
		if err != nil {
			return snapshot.Options{}, err
		}
		callOpts.Format = f
	}
	patterns, err := normalize.CompilePatterns(o.Exclude)
	if err != nil {
		return snapshot.Options{}, fmt.Errorf("--exclude: %w", err)
	}
	callOpts.DynamicAttributes = o.Dynamic
	callOpts.IgnoreOrder = o.IgnoreOrder
	callOpts.Excluding = patterns
	callOpts.Update = o.Update
	return callOpts, nil
}
