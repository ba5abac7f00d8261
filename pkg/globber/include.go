package globber

import (
	"github.com/arthur-debert/bls/pkg/matcher"
	"github.com/arthur-debert/bls/pkg/paths"
)

// IncludeGlobber wraps one include glob, already relative to the common
// root, and answers the two questions the walker asks about a folder: can
// anything below it still match, and is it the folder where the glob turns
// recursive.
type IncludeGlobber struct {
	segments      []string
	recursive     int
	spanning      bool
	caseSensitive bool
	full          *matcher.Pattern
	ancestors     map[int]*matcher.Pattern
}

// NewIncludeGlobber compiles glob, a '/'-separated expression relative to
// the common root.
func NewIncludeGlobber(glob string, caseSensitive bool) (*IncludeGlobber, error) {
	full, err := matcher.Compile(glob, caseSensitive)
	if err != nil {
		return nil, err
	}

	segments, spans := splitGlob(glob)
	recursive := -1
	spanning := false
	for i, segment := range segments {
		if segment == paths.RecursiveWildcard {
			recursive = i
			break
		}
		spanning = spanning || spans[i]
	}

	return &IncludeGlobber{
		segments:      segments,
		recursive:     recursive,
		spanning:      spanning,
		caseSensitive: caseSensitive,
		full:          full,
		ancestors:     make(map[int]*matcher.Pattern),
	}, nil
}

// Glob returns the expression being matched.
func (g *IncludeGlobber) Glob() string {
	return g.full.String()
}

// RecursiveIndex returns the position of the first "**" segment, or -1.
func (g *IncludeGlobber) RecursiveIndex() int {
	return g.recursive
}

// IsMatch reports whether rel matches the whole glob.
func (g *IncludeGlobber) IsMatch(rel string) bool {
	return g.full.Match(rel)
}

// IsFolderMatch reports whether the folder rel lies on a path the glob can
// still match below.
func (g *IncludeGlobber) IsFolderMatch(rel string) bool {
	return g.ancestorMatch(rel, len(paths.Split(rel)))
}

// IsRecursFolder reports whether the folder rel sits exactly at the depth of
// the first "**" segment and its ancestors match the glob so far. Every
// folder below it is a candidate.
func (g *IncludeGlobber) IsRecursFolder(rel string) bool {
	if g.recursive < 0 {
		return false
	}
	depth := len(paths.Split(rel))
	return depth == g.recursive+1 && g.ancestorMatch(rel, depth)
}

// ancestorMatch matches rel against the glob truncated to the depth of rel.
// Segments from the first "**" on are kept whole, since "**" absorbs any
// depth. An alternative spanning a separator before the first "**" has no
// fixed depth, so every folder is a candidate.
func (g *IncludeGlobber) ancestorMatch(rel string, depth int) bool {
	if g.spanning {
		return true
	}
	limit := len(g.segments)
	if g.recursive >= 0 {
		limit = g.recursive + 1
	}
	count := min(limit, depth)
	if count >= len(g.segments) {
		return g.full.Match(rel)
	}
	if p := g.ancestor(count); p != nil {
		return p.Match(rel)
	}
	return true
}

// ancestor returns the glob truncated to count segments. A truncation that
// is not a valid pattern on its own yields nil, and the folder is treated as
// a candidate.
func (g *IncludeGlobber) ancestor(count int) *matcher.Pattern {
	if p, ok := g.ancestors[count]; ok {
		return p
	}
	p, err := matcher.Compile(paths.Join(g.segments[:count]), g.caseSensitive)
	if err != nil {
		p = nil
	}
	g.ancestors[count] = p
	return p
}

// splitGlob splits glob on the separators outside brace groups. spans[i]
// reports whether segment i holds a separator inside a brace group. A
// leading separator is kept as a "/" root segment, as paths.Split does.
func splitGlob(glob string) (segments []string, spans []bool) {
	start, depth, span := 0, 0, false
	if glob != "" && (glob[0] == '/' || glob[0] == '\\') {
		segments, spans = []string{"/"}, []bool{false}
		start = 1
	}
	flush := func(end int) {
		if end > start {
			segments = append(segments, glob[start:end])
			spans = append(spans, span)
		}
		span = false
	}
	for i := start; i < len(glob); i++ {
		switch c := glob[i]; {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == '/' || c == '\\':
			if depth > 0 {
				span = true
				continue
			}
			flush(i)
			start = i + 1
		}
	}
	flush(len(glob))
	return segments, spans
}
