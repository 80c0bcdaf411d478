package snapshot

import (
	"regexp"
	"slices"

	"github.com/roach88/snapmatch/internal/handler"
	"github.com/roach88/snapmatch/internal/normalize"
)

// Defaults are the process-wide comparison settings. A Matcher copies
// them at construction; changing the caller's slices afterwards has no
// effect on it.
type Defaults struct {
	Format            handler.Format
	DynamicAttributes []string
	IgnoreOrder       []string
	TextExcluding     []*regexp.Regexp
}

// DefaultDynamicAttributes are the fields treated as dynamic when no
// configuration says otherwise.
var DefaultDynamicAttributes = []string{"id", "created_at", "updated_at"}

// NewDefaults returns json format with the default dynamic attributes.
func NewDefaults() Defaults {
	return Defaults{
		Format:            handler.FormatJSON,
		DynamicAttributes: slices.Clone(DefaultDynamicAttributes),
	}
}

func (d Defaults) clone() Defaults {
	return Defaults{
		Format:            d.Format,
		DynamicAttributes: slices.Clone(d.DynamicAttributes),
		IgnoreOrder:       slices.Clone(d.IgnoreOrder),
		TextExcluding:     slices.Clone(d.TextExcluding),
	}
}

// Options are the per-call overrides for one match attempt.
// List fields extend the defaults; Format replaces it when set.
type Options struct {
	Format            handler.Format
	DynamicAttributes []string
	IgnoreOrder       []string
	Excluding         []*regexp.Regexp

	// Update rewrites a present snapshot that does not match.
	Update bool
}

// ComparisonOptions is the resolved, immutable configuration of a single
// match attempt.
type ComparisonOptions struct {
	format            handler.Format
	dynamicAttributes []string
	ignoreOrder       []string
	excluding         []*regexp.Regexp
	update            bool
}

// Resolve merges per-call options over defaults. Lists are ordered
// unions with duplicates removed, defaults first.
func Resolve(d Defaults, o Options) ComparisonOptions {
	format := d.Format
	if o.Format != "" {
		format = o.Format
	}
	if format == "" {
		format = handler.FormatJSON
	}
	return ComparisonOptions{
		format:            format,
		dynamicAttributes: normalize.MergeNames(d.DynamicAttributes, o.DynamicAttributes),
		ignoreOrder:       normalize.MergeNames(d.IgnoreOrder, o.IgnoreOrder),
		excluding:         normalize.MergePatterns(d.TextExcluding, o.Excluding),
		update:            o.Update,
	}
}

func (c ComparisonOptions) Format() handler.Format { return c.format }

func (c ComparisonOptions) DynamicAttributes() []string { return slices.Clone(c.dynamicAttributes) }

func (c ComparisonOptions) IgnoreOrder() []string { return slices.Clone(c.ignoreOrder) }

func (c ComparisonOptions) Excluding() []*regexp.Regexp { return slices.Clone(c.excluding) }

func (c ComparisonOptions) Update() bool { return c.update }

// handlerOptions selects what the handler package needs.
func (c ComparisonOptions) handlerOptions() handler.Options {
	return handler.Options{
		Format:            c.format,
		DynamicAttributes: c.DynamicAttributes(),
		IgnoreOrder:       c.IgnoreOrder(),
		Excluding:         c.Excluding(),
	}
}
