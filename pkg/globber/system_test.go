package globber

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/testutil"
	"github.com/arthur-debert/bls/pkg/types"
)

func diskOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteGlobTestFiles(t, dir)
	return Options{WorkingDir: dir, CaseSensitive: true, Logger: &quiet}
}

func collectSorted(t *testing.T, g *Globber) []string {
	t.Helper()
	entries, err := g.Execute().Collect()
	require.NoError(t, err)
	return testutil.SortedPaths(entries)
}

func TestSystemGlobber_AgreesWithWalker(t *testing.T) {
	tests := []struct {
		include []string
		exclude []string
		base    string
		kind    types.EntityKind
	}{
		{include: []string{"**/*"}, base: "GlobTestFiles"},
		{include: []string{"*"}, base: "GlobTestFiles"},
		{include: []string{"**/*"}, exclude: []string{"**/*.txt"}, base: "GlobTestFiles"},
		{include: []string{"**/*"}, exclude: []string{"SubFolder2/**"}, base: "GlobTestFiles"},
		{include: []string{"../**/*"}, base: "GlobTestFiles/SubFolder2"},
		{include: []string{"*.md", "Sub*/*.txt"}, base: "GlobTestFiles"},
		{include: []string{"**/*"}, base: "GlobTestFiles", kind: types.Folders},
		{include: []string{"*"}, base: "GlobTestFiles", kind: types.Folders},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+" "+tt.include[0], func(t *testing.T) {
			opts := diskOptions(t)
			opts.IncludeGlobs = tt.include
			opts.ExcludeGlobs = tt.exclude
			opts.BasePaths = []string{tt.base}
			opts.Kind = tt.kind

			walker, err := New(opts)
			require.NoError(t, err)
			system, err := NewSystemGlobber(opts)
			require.NoError(t, err)

			assert.Equal(t, collectSorted(t, walker), collectSorted(t, system))
		})
	}
}

func TestSystemGlobber_ClimbingIncludeWithPlainExclude(t *testing.T) {
	opts := diskOptions(t)
	opts.IncludeGlobs = []string{"../**/*"}
	opts.ExcludeGlobs = []string{"**/*.txt"}
	opts.BasePaths = []string{"GlobTestFiles/SubFolder2"}

	system, err := NewSystemGlobber(opts)
	require.NoError(t, err)
	walker, err := New(opts)
	require.NoError(t, err)

	// the system variant drops every .txt file, the walker only those below
	// the base path
	assert.Equal(t, []string{
		"../FolderLevel1.md",
		"../SubFolder1/SubFolder1_FolderLevel2.md",
		"../SubFolder2/SubFolder2_FolderLevel2.md",
		"../SubFolder2/SubSubFolder2/SubSubFolder2_FolderLevel3.md",
	}, collectSorted(t, system))
	assert.Len(t, collectSorted(t, walker), 7)
}

func TestGlobber_OSFileSystem(t *testing.T) {
	opts := diskOptions(t)
	opts.IncludeGlobs = []string{"**/*.md"}
	opts.BasePaths = []string{"GlobTestFiles"}
	opts.Sort = types.SortSize

	g, err := New(opts)
	require.NoError(t, err)
	entries, err := g.Execute().Collect()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// each file holds its own name, so size follows name length
	assert.Equal(t, filepath.FromSlash("FolderLevel1.md"), entries[0].Path)
	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, int64(len("FolderLevel1.md")), info.Size())
}

func TestGlobber_PermissionDenied(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipAsRoot(t)

	opts := diskOptions(t)
	locked := filepath.Join(opts.WorkingDir, "GlobTestFiles", "SubFolder1")
	testutil.Chmod(t, locked, 0)
	opts.IncludeGlobs = []string{"**/*.md"}
	opts.BasePaths = []string{"GlobTestFiles"}

	g, err := New(opts)
	require.NoError(t, err)
	entries, err := g.Execute().Collect()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, g.IgnoredErrors().Len())
}
