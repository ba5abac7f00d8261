package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS interface with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	cwd   string

	// Error injection
	errorPaths map[string]error

	// Every directory listed, in order
	listed []string
}

// fileNode represents a file or directory in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		cwd:        "/",
		errorPaths: make(map[string]error),
	}
}

// normalizePath converts a path to absolute form
func (m *MemoryFS) normalizePath(path string) string {
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = m.cwd + "/" + path
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// getNode retrieves a node at the given path
func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = m.normalizePath(path)

	// Check for injected errors
	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	return node, nil
}

// resolve follows symbolic links from node
func (m *MemoryFS) resolve(path string, node *fileNode) (*fileNode, error) {
	for hops := 0; node.isLink; hops++ {
		if hops > 40 {
			return nil, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
		}
		target := node.linkDest
		if !strings.HasPrefix(filepath.ToSlash(target), "/") {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = m.normalizePath(target)
		var err error
		node, err = m.getNode(path)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// WriteFile writes data to a file, creating parent directories as needed
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)
	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	parent := m.files[m.normalizePath(filepath.Dir(path))]

	node := &fileNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}
	parent.children[node.name] = node
	m.files[path] = node

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

// mkdirAll is the internal implementation without locking
func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	current := ""
	currentNode := m.files["/"]

	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		current += "/" + part

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			currentNode = child
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     perm | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}
		currentNode.children[part] = newDir
		m.files[current] = newDir
		currentNode = newDir
	}

	return nil
}

// Symlink creates a symbolic link
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := m.normalizePath(link)
	if _, exists := m.files[linkPath]; exists {
		return &fs.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}
	if err := m.mkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return err
	}
	parent := m.files[m.normalizePath(filepath.Dir(linkPath))]

	node := &fileNode{
		name:     filepath.Base(linkPath),
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	parent.children[node.name] = node
	m.files[linkPath] = node

	return nil
}

// Chtimes sets the modification time of a file or directory
func (m *MemoryFS) Chtimes(name string, modTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	node, err := m.getNode(name)
	if err != nil {
		return err
	}
	node.modTime = modTime
	return nil
}

// Stat returns file info, following symbolic links
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalizePath(name)
	node, err := m.getNode(path)
	if err != nil {
		return nil, err
	}
	node, err = m.resolve(path, node)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(path)}, nil
}

// Lstat returns file info without following symlinks
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(m.normalizePath(name))}, nil
}

// ReadDir lists a directory sorted by name, like os.ReadDir
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)
	m.listed = append(m.listed, path)

	node, err := m.getNode(path)
	if err != nil {
		return nil, err
	}
	node, err = m.resolve(path, node)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]fs.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, &dirEntry{
			name: childName,
			info: &fileInfo{node: child, name: childName},
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// Getwd returns the current working directory
func (m *MemoryFS) Getwd() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cwd, nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Listed returns every directory passed to ReadDir, in call order
func (m *MemoryFS) Listed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.listed...)
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
