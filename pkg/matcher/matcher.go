// Package matcher compiles glob expressions and tests candidate paths
// against them.
//
// Patterns and candidates always use '/' between segments. Supported syntax
// is that of doublestar: '*' matches within one segment, '?' matches a single
// character, '**' as a whole segment matches zero or more segments, and
// character classes and alternatives ("[a-c]", "{md,txt}") are available.
// Case sensitivity is fixed when the pattern is compiled.
package matcher

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/bls/pkg/errors"
)

// Pattern is a compiled glob expression.
type Pattern struct {
	expr          string
	compiled      string
	caseSensitive bool
}

// Compile validates expr and prepares it for matching.
func Compile(expr string, caseSensitive bool) (*Pattern, error) {
	compiled := expr
	if !caseSensitive {
		compiled = strings.ToLower(expr)
	}

	if !doublestar.ValidatePattern(compiled) {
		return nil, errors.Newf(errors.ErrInvalidPattern, "invalid glob pattern %q", expr).
			WithDetail("pattern", expr)
	}

	return &Pattern{
		expr:          expr,
		compiled:      compiled,
		caseSensitive: caseSensitive,
	}, nil
}

// MustCompile is Compile for patterns known to be valid. It panics otherwise.
func MustCompile(expr string, caseSensitive bool) *Pattern {
	p, err := Compile(expr, caseSensitive)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression the pattern was compiled from.
func (p *Pattern) String() string {
	return p.expr
}

// CaseSensitive reports how the pattern compares characters.
func (p *Pattern) CaseSensitive() bool {
	return p.caseSensitive
}

// Match reports whether candidate, a '/'-separated relative path, matches
// the whole pattern.
func (p *Pattern) Match(candidate string) bool {
	if !p.caseSensitive {
		candidate = strings.ToLower(candidate)
	}
	return doublestar.MatchUnvalidated(p.compiled, candidate)
}

// Set is an ordered list of patterns evaluated with OR semantics.
type Set []*Pattern

// CompileSet compiles every expression, stopping at the first invalid one.
func CompileSet(exprs []string, caseSensitive bool) (Set, error) {
	set := make(Set, 0, len(exprs))
	for _, expr := range exprs {
		p, err := Compile(expr, caseSensitive)
		if err != nil {
			return nil, err
		}
		set = append(set, p)
	}
	return set, nil
}

// MatchAny reports whether any pattern of the set matches candidate.
func (s Set) MatchAny(candidate string) bool {
	for _, p := range s {
		if p.Match(candidate) {
			return true
		}
	}
	return false
}
