package writers

import (
	"bytes"
	"io"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/errors"
)

func readArchive(t *testing.T, fs afero.Fs, name string) map[string]string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] += string(content)
	}
	return out
}

func archiveNames(t *testing.T, fs afero.Fs, name string) []string {
	t.Helper()
	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

func TestZip_Create(t *testing.T) {
	src := sourceFs(t, map[string]string{
		"a.txt":     "alpha",
		"sub/b.txt": "beta",
		"c.md":      "gamma",
	})
	target := afero.NewMemMapFs()

	n, err := Zip(results(t, src, "**/*.txt"), ZipOptions{Source: src, Target: target, ZipFile: "/out/files.zip"})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, map[string]string{"a.txt": "alpha", "sub/b.txt": "beta"}, readArchive(t, target, "/out/files.zip"))

	exists, err := afero.Exists(target, "/out/files.zip.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestZip_Update(t *testing.T) {
	first := sourceFs(t, map[string]string{"a.txt": "alpha", "b.txt": "beta"})
	target := afero.NewMemMapFs()
	_, err := Zip(results(t, first, "*"), ZipOptions{Source: first, Target: target, ZipFile: "/files.zip"})
	require.NoError(t, err)

	second := sourceFs(t, map[string]string{"A.TXT": "ALPHA", "c.txt": "gamma"})

	t.Run("reject keeps the archive", func(t *testing.T) {
		_, err := Zip(results(t, second, "*"), ZipOptions{
			Source: second, Target: target, ZipFile: "/files.zip", OnDuplicate: RejectDuplicates,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileExists))
		assert.Equal(t, []string{"a.txt", "b.txt"}, archiveNames(t, target, "/files.zip"))
	})

	t.Run("case sensitive names are distinct", func(t *testing.T) {
		scratch := afero.NewMemMapFs()
		_, err := Zip(results(t, first, "*"), ZipOptions{Source: first, Target: scratch, ZipFile: "/files.zip"})
		require.NoError(t, err)

		_, err = Zip(results(t, second, "*"), ZipOptions{
			Source: second, Target: scratch, ZipFile: "/files.zip", OnDuplicate: RejectDuplicates, CaseSensitive: true,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A.TXT", "a.txt", "b.txt", "c.txt"}, archiveNames(t, scratch, "/files.zip"))
	})

	t.Run("replace drops the old entry", func(t *testing.T) {
		_, err := Zip(results(t, second, "*"), ZipOptions{
			Source: second, Target: target, ZipFile: "/files.zip", OnDuplicate: ReplaceDuplicates,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"b.txt": "beta", "A.TXT": "ALPHA", "c.txt": "gamma"},
			readArchive(t, target, "/files.zip"))
	})
}

func TestZip_AppendKeepsBoth(t *testing.T) {
	src := sourceFs(t, map[string]string{"a.txt": "alpha"})
	target := afero.NewMemMapFs()

	for i := 0; i < 2; i++ {
		_, err := Zip(results(t, src, "*"), ZipOptions{Source: src, Target: target, ZipFile: "/files.zip"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a.txt", "a.txt"}, archiveNames(t, target, "/files.zip"))
}

func TestZip_NotAnArchive(t *testing.T) {
	src := sourceFs(t, map[string]string{"a.txt": "alpha"})
	target := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(target, "/files.zip", []byte("plain text"), 0644))

	_, err := Zip(results(t, src, "*"), ZipOptions{Source: src, Target: target, ZipFile: "/files.zip"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestEntryName(t *testing.T) {
	assert.Equal(t, "sub/a.txt", EntryName("sub/a.txt"))
	assert.Equal(t, "abs/a.txt", EntryName("/abs/a.txt"))
}
