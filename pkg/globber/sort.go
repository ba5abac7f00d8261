package globber

import (
	"strings"
	"time"

	"github.com/arthur-debert/bls/pkg/types"
)

// Comparer orders two entries: negative when a sorts first, zero when they
// are equal under the chosen key.
type Comparer func(a, b *types.Entry) int

// NewComparer returns the ordering for key. Names compare byte-wise, or
// byte-wise on upper-cased text when caseSensitive is false. Keys other
// than name fall back to the name when they tie.
func NewComparer(key types.SortKey, descending, caseSensitive bool) Comparer {
	byName := func(a, b *types.Entry) int {
		return CompareNames(a.Path, b.Path, caseSensitive)
	}

	var cmp Comparer
	switch key {
	case types.SortExtension:
		cmp = func(a, b *types.Entry) int {
			if c := CompareNames(a.Ext(), b.Ext(), caseSensitive); c != 0 {
				return c
			}
			return byName(a, b)
		}
	case types.SortDate:
		cmp = func(a, b *types.Entry) int {
			if c := modTime(a).Compare(modTime(b)); c != 0 {
				return c
			}
			return byName(a, b)
		}
	case types.SortSize:
		cmp = func(a, b *types.Entry) int {
			sa, sb := size(a), size(b)
			switch {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			}
			return byName(a, b)
		}
	default:
		cmp = byName
	}

	if descending {
		return func(a, b *types.Entry) int {
			return -cmp(a, b)
		}
	}
	return cmp
}

// CompareNames compares two paths ordinally, ignoring case when
// caseSensitive is false.
func CompareNames(a, b string, caseSensitive bool) int {
	if !caseSensitive {
		a, b = strings.ToUpper(a), strings.ToUpper(b)
	}
	return strings.Compare(a, b)
}

func modTime(e *types.Entry) time.Time {
	info, err := e.Info()
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func size(e *types.Entry) int64 {
	info, err := e.Info()
	if err != nil {
		return -1
	}
	return info.Size()
}
