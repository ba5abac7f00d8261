// Package paths provides the pure path helpers used by the globber.
//
// Paths are handled as sequences of segments. Splitting accepts both '/' and
// '\' as separators so that glob expressions written for one platform behave
// the same on the other. Internally every relative path and glob pattern uses
// '/' between segments; conversion to the platform separator happens only when
// a path is handed back to the user.
//
// # Segments
//
//	segs := paths.Split(`..\src/./lib/../main.go`)
//	// ["..", "src", ".", "lib", "..", "main.go"]
//
//	segs = paths.Normalize(segs)
//	// ["..", "src", "main.go"]
//
// A rooted path keeps its root as the first segment ("/" for POSIX roots,
// "C:" for drives, "//server" for network shares) so that joining the
// segments again yields the original absolute path.
//
// # Relative names
//
// RelativeName computes the name of an entry relative to the common root of a
// glob run, prefixed by the route from the base directory to that root. This
// is how entries found above the base directory (through "../" includes) end
// up reported as "../name".
package paths
