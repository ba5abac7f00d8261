package globber

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/logging"
	"github.com/arthur-debert/bls/pkg/paths"
	"github.com/arthur-debert/bls/pkg/types"
)

// finder turns one base path into a source of matches.
type finder interface {
	find(p *plan, bp *basePlan, ignored *IgnoredErrors, logger zerolog.Logger) (matchSource, error)
}

type walkFinder struct{}

func (walkFinder) find(p *plan, bp *basePlan, ignored *IgnoredErrors, logger zerolog.Logger) (matchSource, error) {
	return newWalker(p, bp, ignored, logger), nil
}

// Globber runs one glob configuration. A Globber executes once; build a new
// one to run again.
type Globber struct {
	plan     *plan
	finder   finder
	ignored  *IgnoredErrors
	logger   zerolog.Logger
	executed bool
}

// New validates opts and returns a globber walking the filesystem itself.
// Configuration errors are reported here, before any filesystem access.
func New(opts Options) (*Globber, error) {
	return newGlobber(opts, walkFinder{})
}

// NewFileGlobber is New for files.
func NewFileGlobber(opts Options) (*Globber, error) {
	opts.Kind = types.Files
	return New(opts)
}

// NewFolderGlobber is New for folders.
func NewFolderGlobber(opts Options) (*Globber, error) {
	opts.Kind = types.Folders
	return New(opts)
}

func newGlobber(opts Options, f finder) (*Globber, error) {
	p, err := newPlan(opts)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("globber")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Globber{
		plan:    p,
		finder:  f,
		ignored: NewIgnoredErrors(),
		logger:  logger,
	}, nil
}

// Kind returns what the globber enumerates.
func (g *Globber) Kind() types.EntityKind {
	return g.plan.kind
}

// BasePaths returns the base paths the run covers, after defaults and the
// single rooted glob rewrite.
func (g *Globber) BasePaths() []string {
	return append([]string(nil), g.plan.basePaths...)
}

// IgnoredErrors returns the access failures recorded so far.
func (g *Globber) IgnoredErrors() *IgnoredErrors {
	return g.ignored
}

// Execute starts the run. Nothing is read from the filesystem until the
// returned cursor is advanced.
func (g *Globber) Execute() *Results {
	r := &Results{
		g:         g,
		logger:    g.logger,
		immediate: g.plan.canOutputImmediately(),
	}
	if g.executed {
		r.fail(errors.New(errors.ErrInternal, "globber already executed"))
		return r
	}
	g.executed = true

	r.logger.Debug().
		Strs("include", g.plan.includes).
		Strs("exclude", g.plan.excludes).
		Strs("basePaths", g.plan.basePaths).
		Str("kind", g.plan.kind.String()).
		Bool("streaming", r.immediate).
		Msg("Starting glob")
	return r
}

// Glob runs opts to completion.
func Glob(opts Options) ([]*types.Entry, *IgnoredErrors, error) {
	g, err := New(opts)
	if err != nil {
		return nil, nil, err
	}
	entries, err := g.Execute().Collect()
	return entries, g.ignored, err
}

// Results is a cursor over the entries of a run.
//
//	results := g.Execute()
//	for results.Next() {
//		fmt.Println(results.Entry().Path)
//	}
//	if err := results.Err(); err != nil {
//		...
//	}
type Results struct {
	g         *Globber
	logger    zerolog.Logger
	immediate bool

	baseIndex int
	base      *basePlan
	source    matchSource

	buffer   []*types.Entry
	draining bool
	pos      int

	entry *types.Entry
	err   error
	done  bool
}

// Next advances to the next entry, doing only the filesystem work needed to
// find it. It returns false when the run is over or failed.
func (r *Results) Next() bool {
	for {
		if r.done {
			return false
		}

		if r.draining {
			if r.pos < len(r.buffer) {
				r.entry = r.buffer[r.pos]
				r.pos++
				return true
			}
			r.finish()
			return false
		}

		if r.source == nil {
			if r.baseIndex >= len(r.g.plan.basePaths) {
				if r.immediate {
					r.finish()
					return false
				}
				r.order()
				r.draining = true
				continue
			}
			if err := r.openBase(r.g.plan.basePaths[r.baseIndex]); err != nil {
				r.fail(err)
				return false
			}
			r.baseIndex++
			continue
		}

		m, ok := r.source.next()
		if !ok {
			if err := r.source.err(); err != nil {
				r.fail(err)
				return false
			}
			r.logger.Debug().Str("basePath", r.base.basePath).Msg("Base path done")
			r.source = nil
			continue
		}

		entry := r.newEntry(m)
		if r.immediate {
			r.entry = entry
			return true
		}
		r.buffer = append(r.buffer, entry)
	}
}

// Entry returns the entry Next moved to.
func (r *Results) Entry() *types.Entry {
	return r.entry
}

// Err returns the error that ended the run, if any.
func (r *Results) Err() error {
	return r.err
}

// IgnoredErrors returns the access failures recorded so far.
func (r *Results) IgnoredErrors() *IgnoredErrors {
	return r.g.ignored
}

// All adapts the cursor to a range-over-func sequence. A failure is yielded
// last, with a nil entry.
func (r *Results) All() iter.Seq2[*types.Entry, error] {
	return func(yield func(*types.Entry, error) bool) {
		for r.Next() {
			if !yield(r.entry, nil) {
				return
			}
		}
		if r.err != nil {
			yield(nil, r.err)
		}
	}
}

// Collect drains the cursor.
func (r *Results) Collect() ([]*types.Entry, error) {
	var entries []*types.Entry
	for r.Next() {
		entries = append(entries, r.entry)
	}
	return entries, r.err
}

func (r *Results) openBase(basePath string) error {
	bp, err := newBasePlan(r.g.plan, basePath)
	if err != nil {
		return err
	}
	r.logger.Debug().
		Str("basePath", basePath).
		Str("root", bp.root).
		Str("prefix", bp.prefix).
		Msg("Globbing base path")

	source, err := r.g.finder.find(r.g.plan, bp, r.g.ignored, r.logger)
	if err != nil {
		return err
	}
	r.base = bp
	r.source = source
	return nil
}

func (r *Results) newEntry(m match) *types.Entry {
	name := filepath.FromSlash(m.rel)
	if r.g.plan.fullyQualified {
		name = m.fullPath
	}
	return types.NewEntry(r.g.plan.fs, paths.ToPrimarySeparators(name), r.base.basePath, m.fullPath, m.dirent)
}

// order deduplicates the buffered entries of several base paths, keeping
// the first occurrence, and sorts them. Without a sort key the entries are
// ordered by name.
func (r *Results) order() {
	p := r.g.plan
	if p.multipleBases && !p.allowDuplicates {
		seen := make(map[string]struct{}, len(r.buffer))
		unique := r.buffer[:0]
		for _, e := range r.buffer {
			key := e.Path
			if !p.caseSensitive {
				key = strings.ToUpper(key)
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			unique = append(unique, e)
		}
		r.buffer = unique
	}

	key := p.sort
	if key == types.SortNone {
		key = types.SortName
	}
	slices.SortStableFunc(r.buffer, NewComparer(key, p.descending, p.caseSensitive))
}

func (r *Results) fail(err error) {
	r.err = err
	r.entry = nil
	r.done = true
	r.source = nil
}

func (r *Results) finish() {
	r.entry = nil
	r.done = true
	r.logger.Debug().Int("ignoredErrors", r.g.ignored.Len()).Msg("Glob finished")
}
