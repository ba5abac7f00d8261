package globber

import (
	"path/filepath"

	"github.com/arthur-debert/bls/pkg/matcher"
	"github.com/arthur-debert/bls/pkg/paths"
)

// basePlan is everything a walk of one base path needs. It is computed once
// per base path, when the run reaches it.
type basePlan struct {
	basePath string
	baseDir  string
	root     string
	// prefix is the route from baseDir to root in '/' form, "" when they
	// are the same directory.
	prefix   string
	includes []*IncludeGlobber
	excludes matcher.Set
}

// resolveCommonRoot returns the deepest directory containing baseDir and
// every directory the leading ".." segments of the include globs climb to.
func resolveCommonRoot(baseDir string, includes []string, caseSensitive bool) string {
	candidates := [][]string{paths.Split(baseDir)}
	for _, glob := range includes {
		segments := paths.Split(glob)
		n := paths.LeadingParentCount(segments)
		if n == 0 {
			continue
		}
		dir := filepath.Join(baseDir, filepath.Join(segments[:n]...))
		candidates = append(candidates, paths.Split(dir))
	}

	common := paths.CommonPrefix(candidates, caseSensitive)
	if len(common) == 0 {
		return baseDir
	}

	root := paths.Join(common)
	if paths.IsDriveSpecifier(root) {
		root += "/"
	}
	return paths.ToPrimarySeparators(filepath.FromSlash(root))
}

// newBasePlan resolves the common root of basePath and rewrites the globs of
// p relative to it.
func newBasePlan(p *plan, basePath string) (*basePlan, error) {
	baseDir := paths.Abs(p.workingDir, basePath)
	root := resolveCommonRoot(baseDir, p.includes, p.caseSensitive)

	prefix, err := paths.RelativeName(root, root, baseDir)
	if err != nil {
		return nil, err
	}
	if prefix == paths.CurrentDir {
		prefix = ""
	}

	bp := &basePlan{
		basePath: basePath,
		baseDir:  baseDir,
		root:     root,
		prefix:   prefix,
	}

	for _, glob := range p.includes {
		rel, err := rebase(glob, root, baseDir)
		if err != nil {
			return nil, err
		}
		ig, err := NewIncludeGlobber(rel, p.caseSensitive)
		if err != nil {
			return nil, err
		}
		bp.includes = append(bp.includes, ig)
	}

	excludes := make([]string, 0, len(p.excludes))
	for _, glob := range p.excludes {
		rel, err := rebase(glob, root, baseDir)
		if err != nil {
			return nil, err
		}
		excludes = append(excludes, rel)
	}
	bp.excludes, err = matcher.CompileSet(excludes, p.caseSensitive)
	if err != nil {
		return nil, err
	}

	return bp, nil
}

// rebase expresses glob, relative to baseDir, as a name relative to root
// with the route from baseDir to root in front.
func rebase(glob, root, baseDir string) (string, error) {
	return paths.RelativeName(filepath.Join(baseDir, filepath.FromSlash(glob)), root, baseDir)
}

// relName joins a child name onto a '/'-separated relative folder name.
func relName(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
