package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// SlugChecker reports whether a slug is already taken. Output stores
// implement it; tests use a map-backed fake.
type SlugChecker interface {
	SlugExists(slug string) bool
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title, collapses every non-alphanumeric run to a
// single hyphen, and trims leading/trailing hyphens. Deterministic: the same
// title always yields the same base slug.
func Slugify(title string) string {
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "story"
	}
	if len(s) > 80 {
		s = strings.Trim(s[:80], "-")
	}
	return s
}

// UniqueSlug resolves collisions by appending a numeric suffix to the base
// slug. A nil checker means no collision source and the base wins.
func UniqueSlug(title string, taken SlugChecker) string {
	base := Slugify(title)
	if taken == nil || !taken.SlugExists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken.SlugExists(candidate) {
			return candidate
		}
	}
}
