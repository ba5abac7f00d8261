package writers

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/filesystem"
	"github.com/arthur-debert/bls/pkg/globber"
)

const workDir = "/work"

var quiet = zerolog.Nop()

var fixedTime = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

// sourceFs returns an in-memory tree below /work/src holding files, all
// modified at fixedTime.
func sourceFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		full := workDir + "/src/" + name
		require.NoError(t, afero.WriteFile(mem, full, []byte(content), 0644))
		require.NoError(t, mem.Chtimes(full, fixedTime, fixedTime))
	}
	return mem
}

func results(t *testing.T, src afero.Fs, include ...string) *globber.Results {
	t.Helper()
	g, err := globber.New(globber.Options{
		IncludeGlobs: include,
		BasePaths:    []string{"src"},
		FileSystem:   filesystem.NewAferoFS(src),
		WorkingDir:   workDir,
		Logger:       &quiet,
	})
	require.NoError(t, err)
	return g.Execute()
}
