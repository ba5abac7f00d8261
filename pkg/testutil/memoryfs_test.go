// pkg/testutil/memoryfs_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test MemoryFS implementation

package testutil

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS_ReadDirSortedByName(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/d/b.txt", []byte("b"), 0644))
	require.NoError(t, m.WriteFile("/d/a.txt", []byte("a"), 0644))
	require.NoError(t, m.MkdirAll("/d/c", 0755))

	entries, err := m.ReadDir("/d")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "c"}, names)
	assert.True(t, entries[2].IsDir())
	assert.Equal(t, []string{"/d"}, m.Listed())
}

func TestMemoryFS_Stat(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/f.txt", []byte("hello"), 0644))

	info, err := m.Stat("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.False(t, info.IsDir())

	_, err = m.Stat("/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFS_Symlink(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/target", 0755))
	require.NoError(t, m.Symlink("/target", "/link"))

	info, err := m.Stat("/link")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	linfo, err := m.Lstat("/link")
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&fs.ModeSymlink)
}

func TestMemoryFS_WithError(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/locked", 0755))
	m.WithError("/locked", fs.ErrPermission)

	_, err := m.ReadDir("/locked")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestMemoryFS_Chtimes(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/f.txt", nil, 0644))
	when := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, m.Chtimes("/f.txt", when))

	info, err := m.Stat("/f.txt")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(when))
}

func TestMemoryGlobTestFiles(t *testing.T) {
	m, root := MemoryGlobTestFiles(t, "/work")
	assert.Equal(t, "/work/GlobTestFiles", root)

	for _, name := range GlobTestFiles {
		_, err := m.Stat(root + "/" + name)
		assert.NoError(t, err, name)
	}
	for _, name := range GlobTestFolders {
		info, err := m.Stat(root + "/" + name)
		require.NoError(t, err, name)
		assert.True(t, info.IsDir())
	}
}

func TestWriteGlobTestFiles(t *testing.T) {
	root := WriteGlobTestFiles(t, t.TempDir())
	for _, name := range GlobTestFiles {
		assert.True(t, FileExists(t, root+"/"+name), name)
	}
}
