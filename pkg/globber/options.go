package globber

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/filesystem"
	"github.com/arthur-debert/bls/pkg/matcher"
	"github.com/arthur-debert/bls/pkg/paths"
	"github.com/arthur-debert/bls/pkg/types"
)

// Options configures a globber run. It is not modified by the globber.
type Options struct {
	// IncludeGlobs are the glob expressions selecting entries. At least one
	// is required.
	IncludeGlobs []string
	// ExcludeGlobs remove entries (and whole folders) from the result.
	ExcludeGlobs []string
	// BasePaths are the directories globs are evaluated from. Empty means
	// the working directory.
	BasePaths []string

	// FullyQualifiedPaths reports absolute paths. Implied by more than one
	// base path.
	FullyQualifiedPaths bool
	// CaseSensitive selects case sensitive matching and ordering.
	CaseSensitive bool
	// Sort orders the final result set. SortSize is only valid for files.
	Sort types.SortKey
	// SortDescending reverses the order.
	SortDescending bool
	// AllowDuplicates lets results of several base paths stream out as
	// they are found instead of being collected and deduplicated.
	AllowDuplicates bool
	// AbortOnAccessErrors turns filesystem access failures into fatal
	// errors instead of recording them.
	AbortOnAccessErrors bool

	// Kind selects files or folders.
	Kind types.EntityKind

	// FileSystem lists directories (optional, defaults to OS filesystem).
	FileSystem types.FS
	// WorkingDir resolves relative base paths (optional, defaults to the
	// process working directory).
	WorkingDir string
	// Logger receives the run's debug and trace events (optional, defaults
	// to the "globber" component logger).
	Logger *zerolog.Logger
}

// plan is the validated, normalized form of Options.
type plan struct {
	includes            []string
	excludes            []string
	basePaths           []string
	multipleBases       bool
	fullyQualified      bool
	caseSensitive       bool
	sort                types.SortKey
	descending          bool
	allowDuplicates     bool
	abortOnAccessErrors bool
	kind                types.EntityKind
	fs                  types.FS
	workingDir          string
}

// canOutputImmediately reports whether matches may be streamed as they are
// found.
func (p *plan) canOutputImmediately() bool {
	return p.sort == types.SortNone && (p.allowDuplicates || !p.multipleBases)
}

// newPlan validates opts. Every configuration error is reported here, before
// any filesystem access.
func newPlan(opts Options) (*plan, error) {
	if len(opts.IncludeGlobs) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "at least one include glob is required")
	}
	for _, g := range opts.IncludeGlobs {
		if strings.TrimSpace(g) == "" {
			return nil, errors.New(errors.ErrInvalidInput, "include globs cannot be empty")
		}
	}

	if opts.Sort == types.SortSize && opts.Kind == types.Folders {
		return nil, errors.New(errors.ErrSortUnsupported, "sort by size is not supported for folders")
	}

	p := &plan{
		includes:            append([]string(nil), opts.IncludeGlobs...),
		basePaths:           append([]string(nil), opts.BasePaths...),
		fullyQualified:      opts.FullyQualifiedPaths,
		caseSensitive:       opts.CaseSensitive,
		sort:                opts.Sort,
		descending:          opts.SortDescending,
		allowDuplicates:     opts.AllowDuplicates,
		abortOnAccessErrors: opts.AbortOnAccessErrors,
		kind:                opts.Kind,
		fs:                  opts.FileSystem,
		workingDir:          opts.WorkingDir,
	}

	if p.fs == nil {
		p.fs = filesystem.NewOS()
	}
	if p.workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		p.workingDir = wd
	}

	p.rewriteSingleRootedInclude()

	if len(p.basePaths) == 0 {
		p.basePaths = []string{paths.CurrentDir}
	}
	p.multipleBases = len(p.basePaths) > 1
	if p.multipleBases {
		p.fullyQualified = true
	}

	for i, g := range p.includes {
		normalized, err := normalizeGlob(g, true)
		if err != nil {
			return nil, err
		}
		p.includes[i] = normalized
	}
	for _, g := range opts.ExcludeGlobs {
		if strings.TrimSpace(g) == "" {
			continue
		}
		normalized, err := normalizeGlob(g, false)
		if err != nil {
			return nil, err
		}
		p.excludes = append(p.excludes, normalized)
	}

	return p, nil
}

// rewriteSingleRootedInclude lets a caller glob an absolute path without a
// base path: the root of the path becomes the base path, the remainder the
// include glob, and output switches to fully qualified paths.
func (p *plan) rewriteSingleRootedInclude() {
	if len(p.basePaths) > 0 || len(p.includes) != 1 || !isRooted(p.includes[0]) {
		return
	}

	segments := paths.Split(p.includes[0])
	rootLen := 1
	if strings.HasPrefix(segments[0], "//") && len(segments) > 1 {
		// a network share root includes the share name
		rootLen = 2
	}

	root := paths.Join(segments[:rootLen])
	if paths.IsDriveSpecifier(root) || strings.HasPrefix(root, "//") {
		root += "/"
	}

	p.basePaths = []string{paths.ToPrimarySeparators(filepath.FromSlash(root))}
	p.includes = []string{paths.Join(segments[rootLen:])}
	p.fullyQualified = true
}

// isRooted reports whether a glob expression starts at a filesystem root or
// a drive.
func isRooted(glob string) bool {
	if glob == "" {
		return false
	}
	if glob[0] == '/' || glob[0] == '\\' || filepath.IsAbs(glob) {
		return true
	}
	segments := paths.Split(glob)
	return len(segments) > 0 && paths.IsDriveSpecifier(segments[0])
}

// normalizeGlob rejects rooted globs, turns separators into '/', drops "."
// segments and collapses literal "name/.." pairs. For include globs any ".."
// left after the first named segment is rejected: the folder it climbs out
// of is ambiguous.
func normalizeGlob(glob string, include bool) (string, error) {
	if isRooted(glob) {
		return "", errors.Newf(errors.ErrRootedGlob,
			"glob %q is rooted; a single rooted glob is supported only when no base paths are supplied", glob).
			WithDetail("glob", glob)
	}

	segments := paths.NormalizeGlob(paths.Split(glob))

	if include {
		leading := paths.LeadingParentCount(segments)
		for _, segment := range segments[leading:] {
			if segment == paths.ParentDir {
				return "", errors.Newf(errors.ErrParentSegment,
					"include glob cannot have a %q segment after the first named directory: %q", paths.ParentDir, glob).
					WithDetail("glob", glob)
			}
		}
	}

	normalized := paths.Join(segments)
	if normalized == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "glob %q selects nothing", glob)
	}
	if _, err := matcher.Compile(normalized, true); err != nil {
		return "", err
	}
	return normalized, nil
}
