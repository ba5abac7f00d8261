package globber

import (
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/matcher"
	"github.com/arthur-debert/bls/pkg/types"
)

// match is one entry found below a base path.
type match struct {
	rel      string
	fullPath string
	dirent   fs.DirEntry
}

// matchSource produces the matches of one base path. next returns false
// when the source is exhausted or failed; err tells which.
type matchSource interface {
	next() (match, bool)
	err() error
}

// frame is a folder waiting to be listed.
type frame struct {
	dir    string
	rel    string
	dirent fs.DirEntry
	root   bool
	// linked folders are reported but never listed
	linked bool
}

// walker is a depth first traversal driven by an explicit stack of folders.
// The files of a folder are reported before any of its subfolders is
// listed, and subfolders are visited in listing order.
type walker struct {
	fsys     types.FS
	kind     types.EntityKind
	includes []*IncludeGlobber
	excludes matcher.Set
	abort    bool
	ignored  *IgnoredErrors
	logger   zerolog.Logger

	stack   []frame
	ready   []match
	pending *frame
	failure error
}

func newWalker(p *plan, bp *basePlan, ignored *IgnoredErrors, logger zerolog.Logger) *walker {
	return &walker{
		fsys:     p.fs,
		kind:     p.kind,
		includes: bp.includes,
		excludes: bp.excludes,
		abort:    p.abortOnAccessErrors,
		ignored:  ignored,
		logger:   logger,
		stack:    []frame{{dir: bp.root, rel: bp.prefix, root: true}},
	}
}

func (w *walker) err() error {
	return w.failure
}

func (w *walker) next() (match, bool) {
	for {
		if len(w.ready) > 0 {
			m := w.ready[0]
			w.ready = w.ready[1:]
			return m, true
		}
		if w.failure != nil {
			return match{}, false
		}

		if w.pending != nil {
			f := *w.pending
			w.pending = nil
			w.expand(f)
			continue
		}

		if len(w.stack) == 0 {
			return match{}, false
		}
		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if w.kind == types.Folders && !f.root && w.isIncluded(f.rel) {
			// report the folder before listing it
			w.ready = append(w.ready, match{rel: f.rel, fullPath: f.dir, dirent: f.dirent})
			if !f.linked {
				w.pending = &f
			}
			continue
		}
		if !f.linked {
			w.expand(f)
		}
	}
}

// expand lists one folder: matching files become ready, and subfolders that
// are not excluded and that some include glob can reach are stacked.
func (w *walker) expand(f frame) {
	entries, err := w.fsys.ReadDir(f.dir)
	if err != nil {
		w.failure = w.accessFailure(err, f.dir)
		return
	}

	var subfolders []frame
	for _, d := range entries {
		full := filepath.Join(f.dir, d.Name())
		rel := relName(f.rel, d.Name())

		isDir, linked := w.classify(d, full)
		if !isDir {
			if w.kind == types.Files && w.isIncluded(rel) {
				w.ready = append(w.ready, match{rel: rel, fullPath: full, dirent: d})
			}
			continue
		}

		if w.excludes.MatchAny(rel) {
			w.logger.Trace().Str("folder", rel).Msg("Folder excluded")
			continue
		}
		if !w.reachable(rel) {
			continue
		}
		if linked && w.kind != types.Folders {
			continue
		}
		subfolders = append(subfolders, frame{dir: full, rel: rel, dirent: d, linked: linked})
	}

	for i := len(subfolders) - 1; i >= 0; i-- {
		w.stack = append(w.stack, subfolders[i])
	}
}

// classify tells folders from everything else. A symbolic link to a folder
// counts as a folder but is flagged so the walk never enters it.
func (w *walker) classify(d fs.DirEntry, full string) (isDir, linked bool) {
	if d.IsDir() {
		return true, false
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false, false
	}
	info, err := w.fsys.Stat(full)
	if err != nil || !info.IsDir() {
		return false, false
	}
	return true, true
}

// reachable reports whether some include glob can match at or below rel.
func (w *walker) reachable(rel string) bool {
	for _, ig := range w.includes {
		if ig.IsFolderMatch(rel) || ig.IsRecursFolder(rel) {
			return true
		}
	}
	return false
}

// isIncluded applies the final filter: some include glob matches and no
// exclude glob does.
func (w *walker) isIncluded(rel string) bool {
	for _, ig := range w.includes {
		if ig.IsMatch(rel) {
			return !w.excludes.MatchAny(rel)
		}
	}
	return false
}

// accessFailure records err and returns nil, or returns the error that ends
// the run.
func (w *walker) accessFailure(err error, dir string) error {
	if !IsAccessError(err) {
		return errors.Wrapf(err, errors.ErrInternal, "unexpected failure listing %s", dir).
			WithDetail("path", dir)
	}
	if w.abort {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir).
			WithDetail("path", dir)
	}
	if w.ignored.Add(err) {
		w.logger.Debug().Err(err).Str("path", dir).Msg("Ignoring access error")
	}
	return nil
}
