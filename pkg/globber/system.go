package globber

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/matcher"
	"github.com/arthur-debert/bls/pkg/paths"
	"github.com/arthur-debert/bls/pkg/types"
)

// NewSystemGlobber returns a globber that hands every include glob to
// doublestar's own directory walk over the OS filesystem, then drops the
// results matching an exclude glob.
//
// It serves as a reference to check the pruning walker against. Excludes do
// not prune the walk, and they are matched against the names as reported,
// so an exclude like "**/*.txt" also removes "../x.txt" when an include
// climbs above the base path, where the pruning walker would not. Options
// FileSystem is only used for entry metadata. Access failures are skipped
// silently unless AbortOnAccessErrors is set.
func NewSystemGlobber(opts Options) (*Globber, error) {
	return newGlobber(opts, systemFinder{})
}

type systemFinder struct{}

func (systemFinder) find(p *plan, bp *basePlan, ignored *IgnoredErrors, logger zerolog.Logger) (matchSource, error) {
	var options []doublestar.GlobOption
	if !p.caseSensitive {
		options = append(options, doublestar.WithCaseInsensitive())
	}
	if p.kind == types.Files {
		options = append(options, doublestar.WithFilesOnly())
	}
	if p.abortOnAccessErrors {
		options = append(options, doublestar.WithFailOnIOErrors())
	}

	excludes, err := matcher.CompileSet(p.excludes, p.caseSensitive)
	if err != nil {
		return nil, err
	}

	src := &sliceSource{}
	seen := make(map[string]struct{})
	for _, glob := range p.includes {
		segments := paths.Split(glob)
		up := paths.LeadingParentCount(segments)
		pattern := paths.Join(segments[up:])
		if pattern == "" {
			continue
		}

		dir := bp.baseDir
		prefix := ""
		for i := 0; i < up; i++ {
			dir = filepath.Dir(dir)
			prefix += paths.ParentDir + "/"
		}

		err := doublestar.GlobWalk(os.DirFS(dir), pattern, func(name string, d fs.DirEntry) error {
			if p.kind == types.Folders && !d.IsDir() {
				return nil
			}
			rel := prefix + name
			if excludes.MatchAny(rel) {
				return nil
			}
			key := rel
			if !p.caseSensitive {
				key = strings.ToUpper(rel)
			}
			if _, ok := seen[key]; ok {
				return nil
			}
			seen[key] = struct{}{}
			src.matches = append(src.matches, match{
				rel:      rel,
				fullPath: filepath.Join(dir, filepath.FromSlash(name)),
				dirent:   d,
			})
			return nil
		}, options...)
		if err != nil {
			if IsAccessError(err) && !p.abortOnAccessErrors {
				ignored.Add(err)
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot glob %s", dir).
				WithDetail("path", dir)
		}
	}

	logger.Debug().Int("matches", len(src.matches)).Str("basePath", bp.basePath).Msg("System glob done")
	return src, nil
}

// sliceSource replays matches found up front.
type sliceSource struct {
	matches []match
	pos     int
}

func (s *sliceSource) next() (match, bool) {
	if s.pos >= len(s.matches) {
		return match{}, false
	}
	s.pos++
	return s.matches[s.pos-1], true
}

func (s *sliceSource) err() error {
	return nil
}
