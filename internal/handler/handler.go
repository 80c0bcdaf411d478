// Package handler provides the format-specific comparison strategies used
// by the snapshot matcher.
//
// Every format exposes the same contract: Comparable turns raw bytes into
// a normalized form, Compare decides equality of two normalized forms and
// Writable returns what gets persisted. Normalization is applied only on
// the comparison path.
package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/snapmatch/internal/normalize"
	"github.com/roach88/snapmatch/internal/value"
)

// Format selects a handler.
type Format string

const (
	// FormatJSON compares parsed, normalized JSON trees.
	FormatJSON Format = "json"

	// FormatText compares masked text.
	FormatText Format = "text"
)

// ValidFormats lists the accepted format names.
var ValidFormats = []Format{FormatJSON, FormatText}

// ParseFormat resolves a format name. "structured" is accepted as an
// alias for json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "structured":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of %v", s, ValidFormats)
	}
}

// Handler is the per-format comparison contract.
type Handler interface {
	// Format reports which format this handler implements.
	Format() Format

	// Extension is appended to snapshot names to form storage keys.
	Extension() string

	// Comparable returns the normalized form of raw.
	Comparable(raw []byte) (any, error)

	// Compare reports whether two normalized forms are equal.
	Compare(a, b any) bool

	// Writable returns the bytes to persist for raw.
	Writable(raw []byte) []byte
}

// Options carries what a handler needs from the comparison options.
type Options struct {
	Format            Format
	DynamicAttributes []string
	IgnoreOrder       []string
	Excluding         []*regexp.Regexp
}

// For selects the handler for opts.Format.
func For(opts Options) (Handler, error) {
	switch opts.Format {
	case FormatJSON, "":
		return NewJSON(normalize.NewRules(opts.DynamicAttributes, opts.IgnoreOrder)), nil
	case FormatText:
		return NewText(opts.Excluding), nil
	default:
		return nil, fmt.Errorf("no handler for format %q", opts.Format)
	}
}

// JSON compares structured data.
type JSON struct {
	rules normalize.Rules
}

// NewJSON creates a JSON handler that normalizes with rules.
func NewJSON(rules normalize.Rules) *JSON {
	return &JSON{rules: rules}
}

// Format returns FormatJSON.
func (*JSON) Format() Format { return FormatJSON }

// Extension returns ".json".
func (*JSON) Extension() string { return ".json" }

// Comparable parses raw and normalizes the tree.
// Parse failures are returned as *MalformedInputError.
func (h *JSON) Comparable(raw []byte) (any, error) {
	v, err := value.Parse(raw)
	if err != nil {
		return nil, &MalformedInputError{Format: FormatJSON, Err: err}
	}
	return normalize.Tree(v, h.rules), nil
}

// Compare is structural equality. Anything that is not a value.Value
// never compares equal.
func (*JSON) Compare(a, b any) bool {
	va, ok := a.(value.Value)
	if !ok {
		return false
	}
	vb, ok := b.(value.Value)
	if !ok {
		return false
	}
	return value.Equal(va, vb)
}

// Writable persists the original serialized text.
func (*JSON) Writable(raw []byte) []byte {
	return raw
}

// Text compares plain text after masking excluded patterns.
type Text struct {
	patterns []*regexp.Regexp
}

// NewText creates a Text handler masking patterns in order.
func NewText(patterns []*regexp.Regexp) *Text {
	return &Text{patterns: patterns}
}

// Format returns FormatText.
func (*Text) Format() Format { return FormatText }

// Extension returns ".txt".
func (*Text) Extension() string { return ".txt" }

// Comparable masks raw. It never fails.
func (h *Text) Comparable(raw []byte) (any, error) {
	return normalize.Mask(string(raw), h.patterns), nil
}

// Compare is exact string equality of two masked texts. Anything that is
// not a string never compares equal.
func (*Text) Compare(a, b any) bool {
	sa, ok := a.(string)
	if !ok {
		return false
	}
	sb, ok := b.(string)
	return ok && sa == sb
}

// Writable persists the raw text unmodified.
func (*Text) Writable(raw []byte) []byte {
	return raw
}
