package types

import (
	"io/fs"
)

// FS is the filesystem interface required to enumerate entries.
type FS interface {
	// ReadDir lists the immediate children of a directory.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat follows symlinks, Lstat does not. Implementations without
	// symlink support may answer Lstat with Stat.
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
}
