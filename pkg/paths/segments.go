package paths

import (
	"strings"
)

const (
	// CurrentDir is the segment referring to the directory itself.
	CurrentDir = "."
	// ParentDir is the segment climbing to the parent directory.
	ParentDir = ".."
	// RecursiveWildcard is the glob segment matching any number of segments.
	RecursiveWildcard = "**"

	rootSegment = "/"
)

func isSep(c byte) bool {
	return c == '/' || c == '\\'
}

// Split breaks path into segments on both '/' and '\'. Empty segments are
// dropped. A leading separator is kept as a "/" root segment, and a leading
// double separator stays attached to the server name of a network share.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	var segments []string
	rest := path

	switch {
	case len(path) >= 2 && isSep(path[0]) && isSep(path[1]):
		i := 2
		for i < len(path) && !isSep(path[i]) {
			i++
		}
		segments = append(segments, "//"+path[2:i])
		rest = path[i:]
	case isSep(path[0]):
		segments = append(segments, rootSegment)
		rest = path[1:]
	}

	start := 0
	for i := 0; i <= len(rest); i++ {
		if i < len(rest) && !isSep(rest[i]) {
			continue
		}
		if i > start {
			segments = append(segments, rest[start:i])
		}
		start = i + 1
	}

	return segments
}

// IsRootSegment reports whether segment anchors an absolute path: a POSIX
// root, a network share prefix or a drive specifier such as "C:".
func IsRootSegment(segment string) bool {
	if segment == rootSegment || strings.HasPrefix(segment, "//") {
		return true
	}
	return IsDriveSpecifier(segment)
}

// IsDriveSpecifier reports whether s is a bare drive letter followed by a
// colon, e.g. "C:".
func IsDriveSpecifier(s string) bool {
	if len(s) != 2 || s[1] != ':' {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Normalize removes "." segments and collapses every named segment followed
// by "..". Leading ".." segments that climb above the point of reference are
// kept as they are.
func Normalize(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case CurrentDir:
			continue
		case ParentDir:
			if n := len(out); n > 0 && out[n-1] != ParentDir {
				if IsRootSegment(out[n-1]) {
					// ".." above a root stays at the root
					continue
				}
				out = out[:n-1]
				continue
			}
		}
		out = append(out, segment)
	}
	return out
}

// NormalizeGlob is Normalize for glob segments: a segment holding glob
// metacharacters does not name a single folder, so a ".." following it is
// kept instead of collapsing.
func NormalizeGlob(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		switch segment {
		case CurrentDir:
			continue
		case ParentDir:
			if n := len(out); n > 0 && out[n-1] != ParentDir && !HasMeta(out[n-1]) {
				if IsRootSegment(out[n-1]) {
					continue
				}
				out = out[:n-1]
				continue
			}
		}
		out = append(out, segment)
	}
	return out
}

// HasMeta reports whether segment contains glob metacharacters.
func HasMeta(segment string) bool {
	return strings.ContainsAny(segment, "*?[{")
}

// SplitAndNormalize is Normalize(Split(path)).
func SplitAndNormalize(path string) []string {
	return Normalize(Split(path))
}

// Join joins segments with '/'. A "/" root segment is not doubled.
func Join(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	if segments[0] == rootSegment {
		return rootSegment + strings.Join(segments[1:], "/")
	}
	return strings.Join(segments, "/")
}

// NormalizePattern cleans a glob expression: separators become '/', "."
// segments disappear and resolvable ".." segments collapse.
func NormalizePattern(pattern string) string {
	return Join(SplitAndNormalize(pattern))
}

// LeadingParentCount returns how many ".." segments open segments.
func LeadingParentCount(segments []string) int {
	n := 0
	for n < len(segments) && segments[n] == ParentDir {
		n++
	}
	return n
}

// SegmentsEqual compares two segments, ignoring case when caseSensitive is
// false.
func SegmentsEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// HasPrefix reports whether segments starts with prefix.
func HasPrefix(segments, prefix []string, caseSensitive bool) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i := range prefix {
		if !SegmentsEqual(segments[i], prefix[i], caseSensitive) {
			return false
		}
	}
	return true
}

// CommonPrefix returns the longest leading run of segments shared by every
// list.
func CommonPrefix(lists [][]string, caseSensitive bool) []string {
	if len(lists) == 0 {
		return nil
	}
	first := lists[0]
	n := len(first)
	for _, list := range lists[1:] {
		if len(list) < n {
			n = len(list)
		}
	}
	for n > 0 {
		candidate := first[:n]
		shared := true
		for _, list := range lists[1:] {
			if !HasPrefix(list, candidate, caseSensitive) {
				shared = false
				break
			}
		}
		if shared {
			break
		}
		n--
	}
	out := make([]string, n)
	copy(out, first[:n])
	return out
}
