package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSlugs map[string]bool

func (f fakeSlugs) SlugExists(slug string) bool { return f[slug] }

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Sister RUINED the Wedding!", "my-sister-ruined-the-wedding"},
		{"AITA for leaving???", "aita-for-leaving"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"100% not my fault (really)", "100-not-my-fault-really"},
		{"???", "story"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "The Same Title Every Time"
	assert.Equal(t, Slugify(title), Slugify(title))
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := Slugify(long)
	assert.LessOrEqual(t, len(got), 80)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestUniqueSlugCollision(t *testing.T) {
	taken := fakeSlugs{"my-story": true, "my-story-2": true}
	assert.Equal(t, "my-story-3", UniqueSlug("My Story", taken))
	assert.Equal(t, "fresh-title", UniqueSlug("Fresh Title", taken))
	assert.Equal(t, "no-checker", UniqueSlug("No Checker", nil))
}
