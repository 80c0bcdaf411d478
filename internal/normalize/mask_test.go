package normalize

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleText = "XX alpha=beta XX gamma=epsilon XX beta=beta"

func TestMask(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		patterns []*regexp.Regexp
		expected string
	}{
		{
			name:     "no patterns",
			text:     sampleText,
			expected: sampleText,
		},
		{
			name:     "every match replaced",
			text:     sampleText,
			patterns: []*regexp.Regexp{regexp.MustCompile(`be+ta`)},
			expected: "XX alpha====EXCLUDED=== XX gamma=epsilon XX ===EXCLUDED=======EXCLUDED===",
		},
		{
			name:     "pattern without matches is a no-op",
			text:     sampleText,
			patterns: []*regexp.Regexp{regexp.MustCompile(`asdf`)},
			expected: sampleText,
		},
		{
			name:     "replacement is literal",
			text:     "a=1",
			patterns: []*regexp.Regexp{regexp.MustCompile(`(\d)`)},
			expected: "a====EXCLUDED===",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mask(tt.text, tt.patterns))
		})
	}
}

func TestMaskEquivalentTexts(t *testing.T) {
	stored := sampleText
	actual := strings.ReplaceAll(sampleText, "beta", "beeeeeeta")
	patterns := []*regexp.Regexp{regexp.MustCompile(`be+ta`)}

	assert.Equal(t, Mask(stored, patterns), Mask(actual, patterns))

	multiple := strings.ReplaceAll(actual, "alpha", "alph")
	patterns = append(patterns, regexp.MustCompile(`alpha?`))
	assert.Equal(t, Mask(stored, patterns), Mask(multiple, patterns))

	outside := strings.ReplaceAll(sampleText, "alpha", "alppppppha")
	patterns = []*regexp.Regexp{regexp.MustCompile(`be+ta`)}
	assert.NotEqual(t, Mask(stored, patterns), Mask(outside, patterns))
}

func TestMaskChainsOverEarlierOutput(t *testing.T) {
	// The second pattern only matches once the first has inserted its
	// sentinel, so the result proves it ran on the masked text.
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`token-\d+`),
		regexp.MustCompile(`id:===EXCLUDED===`),
	}

	assert.Equal(t, "===EXCLUDED=== rest", Mask("id:token-42 rest", patterns))

	// In reverse order the second pattern finds nothing.
	reversed := []*regexp.Regexp{patterns[1], patterns[0]}
	assert.Equal(t, "id:===EXCLUDED=== rest", Mask("id:token-42 rest", reversed))
}

func TestMergePatterns(t *testing.T) {
	beta := regexp.MustCompile(`be+ta`)
	betaAgain := regexp.MustCompile(`be+ta`)
	alpha := regexp.MustCompile(`alpha?`)

	merged := MergePatterns([]*regexp.Regexp{beta}, []*regexp.Regexp{betaAgain, alpha, nil})

	require.Len(t, merged, 2)
	assert.Same(t, beta, merged[0])
	assert.Same(t, alpha, merged[1])
}

func TestMergeNames(t *testing.T) {
	assert.Equal(t,
		[]string{"id", "created_at", "custom"},
		MergeNames([]string{"id", "created_at"}, []string{"custom", "id"}),
	)
	assert.Nil(t, MergeNames(nil, nil))
}

func TestCompilePatterns(t *testing.T) {
	patterns, err := CompilePatterns([]string{`be+ta`, `\d{4}-\d{2}-\d{2}`})
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, `be+ta`, patterns[0].String())

	_, err = CompilePatterns([]string{`(unclosed`})
	assert.Error(t, err)
}
