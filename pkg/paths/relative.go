package paths

import (
	"fmt"
	"path/filepath"
)

// Abs resolves p against workingDir unless it is already absolute.
func Abs(workingDir, p string) string {
	p = ToPrimarySeparators(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workingDir, p)
}

// RelativeName returns fullPath relative to commonRoot in '/' form. When the
// common root is not the base directory itself, the route from baseDir to
// commonRoot (for example "..") is prepended.
func RelativeName(fullPath, commonRoot, baseDir string) (string, error) {
	rel, err := filepath.Rel(commonRoot, fullPath)
	if err != nil {
		return "", fmt.Errorf("relative name of %q: %w", fullPath, err)
	}

	prefix, err := filepath.Rel(baseDir, commonRoot)
	if err != nil {
		return "", fmt.Errorf("relative name of %q: %w", commonRoot, err)
	}

	if prefix != CurrentDir {
		if rel == CurrentDir {
			rel = prefix
		} else {
			rel = filepath.Join(prefix, rel)
		}
	}

	return filepath.ToSlash(rel), nil
}

// IsWithin reports whether target is parent itself or nested below it.
func IsWithin(parent, target string, caseSensitive bool) bool {
	return HasPrefix(Split(filepath.Clean(target)), Split(filepath.Clean(parent)), caseSensitive)
}
