// pkg/globber/mockfs_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Mock FS
// PURPOSE: Verify the exact listing calls a walk makes

package globber

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/testutil"
)

// MockFS is a mock implementation of types.FS for testing
type MockFS struct {
	mock.Mock
}

func (m *MockFS) ReadDir(name string) ([]fs.DirEntry, error) {
	args := m.Called(name)
	entries, _ := args.Get(0).([]fs.DirEntry)
	return entries, args.Error(1)
}

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	info, _ := args.Get(0).(fs.FileInfo)
	return info, args.Error(1)
}

func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	info, _ := args.Get(0).(fs.FileInfo)
	return info, args.Error(1)
}

type mockDirEntry struct {
	name string
	dir  bool
}

func (d mockDirEntry) Name() string { return d.name }
func (d mockDirEntry) IsDir() bool  { return d.dir }
func (d mockDirEntry) Type() fs.FileMode {
	if d.dir {
		return fs.ModeDir
	}
	return 0
}
func (d mockDirEntry) Info() (fs.FileInfo, error) { return nil, fs.ErrInvalid }

func file(name string) fs.DirEntry   { return mockDirEntry{name: name} }
func folder(name string) fs.DirEntry { return mockDirEntry{name: name, dir: true} }

func mockOptions(fsys *MockFS, include ...string) Options {
	return Options{
		IncludeGlobs: include,
		BasePaths:    []string{"/data"},
		FileSystem:   fsys,
		WorkingDir:   "/work",
		Logger:       &quiet,
	}
}

func TestGlobber_MockFS_PrunesUnreachableFolders(t *testing.T) {
	fsys := new(MockFS)
	fsys.On("ReadDir", "/data").Return([]fs.DirEntry{
		file("a.txt"), file("b.md"), folder("sub"),
	}, nil)

	entries, ignored, err := Glob(mockOptions(fsys, "*.txt"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt"}, testutil.Paths(entries))
	assert.Zero(t, ignored.Len())
	fsys.AssertExpectations(t)
	fsys.AssertNotCalled(t, "ReadDir", "/data/sub")
}

func TestGlobber_MockFS_DescendsForRecursiveGlob(t *testing.T) {
	fsys := new(MockFS)
	fsys.On("ReadDir", "/data").Return([]fs.DirEntry{file("a.txt"), folder("sub")}, nil)
	fsys.On("ReadDir", "/data/sub").Return([]fs.DirEntry{file("b.txt")}, nil)

	entries, _, err := Glob(mockOptions(fsys, "**/*.txt"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, testutil.Paths(entries))
	fsys.AssertNumberOfCalls(t, "ReadDir", 2)
}

func TestGlobber_MockFS_AccessErrors(t *testing.T) {
	tests := []struct {
		name     string
		listErr  error
		abort    bool
		wantCode errors.ErrorCode
		ignored  int
	}{
		{name: "permission denied is ignored", listErr: fs.ErrPermission, ignored: 1},
		{name: "permission denied aborts", listErr: fs.ErrPermission, abort: true, wantCode: errors.ErrFileAccess},
		{name: "unexpected failure is fatal", listErr: stderrors.New("disk on fire"), wantCode: errors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := new(MockFS)
			fsys.On("ReadDir", "/data").Return([]fs.DirEntry{file("a.txt"), folder("locked")}, nil)
			fsys.On("ReadDir", "/data/locked").Return(nil, tt.listErr)

			opts := mockOptions(fsys, "**/*.txt")
			opts.AbortOnAccessErrors = tt.abort
			entries, ignored, err := Glob(opts)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"a.txt"}, testutil.Paths(entries))
			assert.Equal(t, tt.ignored, ignored.Len())
		})
	}
}
