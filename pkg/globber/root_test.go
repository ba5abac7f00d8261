package globber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/types"
)

func TestResolveCommonRoot(t *testing.T) {
	tests := []struct {
		name     string
		baseDir  string
		includes []string
		want     string
	}{
		{name: "no climbing", baseDir: "/a/b/c", includes: []string{"**/*"}, want: "/a/b/c"},
		{name: "one level", baseDir: "/a/b/c", includes: []string{"../*"}, want: "/a/b"},
		{name: "deepest climb wins", baseDir: "/a/b/c", includes: []string{"../*", "../../x/*", "*.md"}, want: "/a"},
		{name: "climb above root", baseDir: "/a", includes: []string{"../../*"}, want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCommonRoot(tt.baseDir, tt.includes, true))
		})
	}
}

func TestNewBasePlan(t *testing.T) {
	p, err := newPlan(Options{
		IncludeGlobs: []string{"../**/*", "*.md"},
		ExcludeGlobs: []string{"**/*.txt"},
		WorkingDir:   "/work",
		Kind:         types.Files,
	})
	require.NoError(t, err)

	bp, err := newBasePlan(p, "GlobTestFiles/SubFolder2")
	require.NoError(t, err)

	assert.Equal(t, "/work/GlobTestFiles/SubFolder2", bp.baseDir)
	assert.Equal(t, "/work/GlobTestFiles", bp.root)
	assert.Equal(t, "..", bp.prefix)
	require.Len(t, bp.includes, 2)
	assert.Equal(t, "../**/*", bp.includes[0].Glob())
	assert.Equal(t, "../SubFolder2/*.md", bp.includes[1].Glob())
	require.Len(t, bp.excludes, 1)
	assert.Equal(t, "../SubFolder2/**/*.txt", bp.excludes[0].String())
}

func TestRelName(t *testing.T) {
	assert.Equal(t, "a", relName("", "a"))
	assert.Equal(t, "../a", relName("..", "a"))
	assert.Equal(t, "x/y/a", relName("x/y", "a"))
}
