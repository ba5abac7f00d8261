package testutil

import (
	"path"
	"testing"
)

// GlobTestFilesDir is the name of the reference tree folder.
const GlobTestFilesDir = "GlobTestFiles"

// GlobTestFiles lists the files of the reference tree, relative to
// GlobTestFilesDir, in the order a depth first walk reports them.
var GlobTestFiles = []string{
	"FolderLevel1.md",
	"FolderLevel1.txt",
	"FolderLevel1_DifferentBaseName.txt",
	"SubFolder1/SubFolder1_FolderLevel2.md",
	"SubFolder1/SubFolder1_FolderLevel2.txt",
	"SubFolder2/SubFolder2_FolderLevel2.md",
	"SubFolder2/SubFolder2_FolderLevel2.txt",
	"SubFolder2/SubSubFolder2/SubSubFolder2_FolderLevel3.md",
	"SubFolder2/SubSubFolder2/SubSubFolder2_FolderLevel3.txt",
}

// GlobTestFolders lists the folders of the reference tree.
var GlobTestFolders = []string{
	"SubFolder1",
	"SubFolder2",
	"SubFolder2/SubSubFolder2",
}

// WriteGlobTestFiles creates the reference tree below dir and returns the
// path of its GlobTestFilesDir folder. Each file holds its own name.
func WriteGlobTestFiles(t *testing.T, dir string) string {
	t.Helper()

	root := CreateDir(t, dir, GlobTestFilesDir)
	for _, name := range GlobTestFiles {
		CreateFile(t, root, name, path.Base(name))
	}
	return root
}

// MemoryGlobTestFiles creates the reference tree below dir, an absolute
// '/'-separated path, in a new MemoryFS.
func MemoryGlobTestFiles(t *testing.T, dir string) (*MemoryFS, string) {
	t.Helper()

	fsys := NewMemoryFS()
	root := path.Join(dir, GlobTestFilesDir)
	for _, name := range GlobTestFiles {
		if err := fsys.WriteFile(path.Join(root, name), []byte(path.Base(name)), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
	return fsys, root
}

// Prefixed returns names with prefix joined in front of each.
func Prefixed(prefix string, names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = path.Join(prefix, name)
	}
	return out
}
