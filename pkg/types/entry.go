package types

import (
	"io/fs"
	"path/filepath"
	"sync"
)

// EntityKind selects what a run enumerates.
type EntityKind int

const (
	// Files enumerates regular files (and anything that is not a directory).
	Files EntityKind = iota
	// Folders enumerates directories.
	Folders
)

func (k EntityKind) String() string {
	if k == Folders {
		return "folders"
	}
	return "files"
}

// Entry is one matched filesystem entry.
type Entry struct {
	// Path is the name reported to the user: relative to the base path, or
	// fully qualified when requested, in platform separators.
	Path string
	// BasePath is the base path the entry was found from, as given.
	BasePath string
	// FullPath is the absolute location of the entry.
	FullPath string

	fsys    FS
	dirent  fs.DirEntry
	once    sync.Once
	info    fs.FileInfo
	infoErr error
}

// NewEntry creates an entry. dirent may be nil, in which case metadata is
// read with fsys.Stat on first use.
func NewEntry(fsys FS, path, basePath, fullPath string, dirent fs.DirEntry) *Entry {
	return &Entry{
		Path:     path,
		BasePath: basePath,
		FullPath: fullPath,
		fsys:     fsys,
		dirent:   dirent,
	}
}

// NewEntryWithInfo creates an entry whose metadata is already known.
func NewEntryWithInfo(path, basePath, fullPath string, info fs.FileInfo) *Entry {
	e := &Entry{
		Path:     path,
		BasePath: basePath,
		FullPath: fullPath,
		info:     info,
	}
	e.once.Do(func() {})
	return e
}

// Info returns the entry metadata, resolving it on first call.
func (e *Entry) Info() (fs.FileInfo, error) {
	e.once.Do(func() {
		if e.dirent != nil {
			e.info, e.infoErr = e.dirent.Info()
			if e.infoErr == nil {
				return
			}
		}
		if e.fsys == nil {
			e.infoErr = fs.ErrInvalid
			return
		}
		e.info, e.infoErr = e.fsys.Stat(e.FullPath)
	})
	return e.info, e.infoErr
}

// Ext returns the extension of the entry name, including the dot.
func (e *Entry) Ext() string {
	return filepath.Ext(e.Path)
}

// String returns Path.
func (e *Entry) String() string {
	return e.Path
}
