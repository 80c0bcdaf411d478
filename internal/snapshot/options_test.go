package snapshot

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/snapmatch/internal/handler"
)

func TestResolveDefaultsOnly(t *testing.T) {
	co := Resolve(NewDefaults(), Options{})

	assert.Equal(t, handler.FormatJSON, co.Format())
	assert.Equal(t, []string{"id", "created_at", "updated_at"}, co.DynamicAttributes())
	assert.Empty(t, co.IgnoreOrder())
	assert.Empty(t, co.Excluding())
	assert.False(t, co.Update())
}

func TestResolveUnionsLists(t *testing.T) {
	date := regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	beta := regexp.MustCompile(`be+ta`)
	defaults := Defaults{
		Format:            handler.FormatText,
		DynamicAttributes: []string{"id"},
		IgnoreOrder:       []string{"tags"},
		TextExcluding:     []*regexp.Regexp{date},
	}

	co := Resolve(defaults, Options{
		DynamicAttributes: []string{"token", "id"},
		IgnoreOrder:       []string{"items"},
		Excluding:         []*regexp.Regexp{beta, regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)},
		Update:            true,
	})

	assert.Equal(t, handler.FormatText, co.Format(), "format falls back to the default")
	assert.Equal(t, []string{"id", "token"}, co.DynamicAttributes())
	assert.Equal(t, []string{"tags", "items"}, co.IgnoreOrder())
	excluding := co.Excluding()
	if assert.Len(t, excluding, 2) {
		assert.Same(t, date, excluding[0], "defaults come first")
		assert.Same(t, beta, excluding[1])
	}
	assert.True(t, co.Update())
}

func TestResolveFormatOverride(t *testing.T) {
	co := Resolve(Defaults{Format: handler.FormatText}, Options{Format: handler.FormatJSON})
	assert.Equal(t, handler.FormatJSON, co.Format())

	co = Resolve(Defaults{}, Options{})
	assert.Equal(t, handler.FormatJSON, co.Format(), "empty format means json")
}

func TestComparisonOptionsAreImmutable(t *testing.T) {
	co := Resolve(NewDefaults(), Options{IgnoreOrder: []string{"items"}})

	got := co.IgnoreOrder()
	got[0] = "changed"
	assert.Equal(t, []string{"items"}, co.IgnoreOrder())
}

func TestMatcherCopiesDefaults(t *testing.T) {
	defaults := NewDefaults()
	m := NewMatcher(nil, defaults, discardLogger())

	defaults.DynamicAttributes[0] = "changed"
	assert.Equal(t, "id", m.Defaults().DynamicAttributes[0])
}
