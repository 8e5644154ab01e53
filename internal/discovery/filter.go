package discovery

import (
	"iter"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"testflo/internal/domain"
)

// Filter matches names against glob patterns
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// Match reports whether name matches the glob pattern. Invalid patterns
// match nothing.
func (f *Filter) Match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// MatchAny reports whether name matches at least one pattern
func (f *Filter) MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if f.Match(pattern, name) {
			return true
		}
	}
	return false
}

// MatchName reports whether an identifier's short name matches a user
// supplied filter. Supports globs like "*MathSuite*" and plain substrings.
func (f *Filter) MatchName(pattern string, id domain.Identifier) bool {
	if pattern == "" {
		return true
	}

	name := id.ShortName()
	if f.Match(pattern, name) {
		return true
	}

	// If pattern contains wildcards but the glob didn't match, require every
	// literal part to be present, e.g. "*Math*Add*"
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}

// Stage passes on the identifiers matching pattern
func (f *Filter) Stage(pattern string, ids iter.Seq[domain.Identifier]) iter.Seq[domain.Identifier] {
	return func(yield func(domain.Identifier) bool) {
		for id := range ids {
			if f.MatchName(pattern, id) && !yield(id) {
				return
			}
		}
	}
}
