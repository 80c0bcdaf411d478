package normalize

import "regexp"

// ExcludedSentinel replaces every masked substring.
const ExcludedSentinel = "===EXCLUDED==="

// Mask replaces every match of each pattern with ExcludedSentinel.
// Patterns run in order over the output of the previous one, so a later
// pattern can match text that includes an earlier sentinel. A pattern
// with no match leaves the text unchanged.
func Mask(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		text = p.ReplaceAllLiteralString(text, ExcludedSentinel)
	}
	return text
}

// MergePatterns returns the ordered union of pattern lists. Patterns with
// the same source text collapse to the first occurrence.
func MergePatterns(lists ...[]*regexp.Regexp) []*regexp.Regexp {
	seen := make(map[string]bool)
	var out []*regexp.Regexp
	for _, list := range lists {
		for _, p := range list {
			if p == nil || seen[p.String()] {
				continue
			}
			seen[p.String()] = true
			out = append(out, p)
		}
	}
	return out
}

// MergeNames returns the ordered union of name lists without duplicates.
func MergeNames(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, n := range list {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// CompilePatterns compiles regular expression sources in order.
func CompilePatterns(sources []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}
