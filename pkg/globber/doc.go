// Package globber enumerates the files or folders matching a set of include
// and exclude glob expressions below one or more base paths.
//
// A run works in three steps for every base path:
//
//  1. The common root is resolved: the deepest directory that contains both
//     the base directory and every directory reached by the leading ".."
//     segments of the include globs.
//  2. Include and exclude globs are rewritten relative to that root, and each
//     include glob is wrapped in an IncludeGlobber that can tell, for a
//     folder, whether anything below it could still match.
//  3. The tree is walked depth first from the root. Excluded folders and
//     folders no include glob can reach are never listed. Files are reported
//     before the subfolders of the same directory are entered.
//
// Results are produced lazily through a Results cursor: each call to Next
// performs only the directory listings needed to find the next match. When
// sorting is requested, or when several base paths must be deduplicated, the
// matches are collected first and reported once every base path is done.
//
// Filesystem access failures (permission denied, vanished directories, I/O
// errors) do not stop a run unless AbortOnAccessErrors is set. Each distinct
// failure message is recorded once and can be read with IgnoredErrors.
package globber
