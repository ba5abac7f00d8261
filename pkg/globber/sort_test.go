package globber

import (
	"io/fs"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/bls/pkg/types"
)

type stubInfo struct {
	fs.FileInfo
	size    int64
	modTime time.Time
}

func (s stubInfo) Size() int64        { return s.size }
func (s stubInfo) ModTime() time.Time { return s.modTime }

func entry(path string, size int64, day int) *types.Entry {
	return types.NewEntryWithInfo(path, ".", "/"+path, stubInfo{
		size:    size,
		modTime: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	})
}

func sorted(entries []*types.Entry, cmp Comparer) []string {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, cmp)
	names := make([]string, len(out))
	for i, e := range out {
		names[i] = e.Path
	}
	return names
}

func TestNewComparer(t *testing.T) {
	entries := []*types.Entry{
		entry("b.txt", 10, 3),
		entry("A.md", 30, 1),
		entry("c.go", 10, 2),
		entry("a.txt", 20, 4),
	}

	tests := []struct {
		name          string
		key           types.SortKey
		descending    bool
		caseSensitive bool
		want          []string
	}{
		{name: "name ignoring case", key: types.SortName, want: []string{"A.md", "a.txt", "b.txt", "c.go"}},
		{name: "name ordinal", key: types.SortName, caseSensitive: true, want: []string{"A.md", "a.txt", "b.txt", "c.go"}},
		{name: "name descending", key: types.SortName, descending: true, want: []string{"c.go", "b.txt", "a.txt", "A.md"}},
		{name: "extension then name", key: types.SortExtension, want: []string{"c.go", "A.md", "a.txt", "b.txt"}},
		{name: "date", key: types.SortDate, want: []string{"A.md", "c.go", "b.txt", "a.txt"}},
		{name: "size then name", key: types.SortSize, want: []string{"b.txt", "c.go", "a.txt", "A.md"}},
		{name: "size descending", key: types.SortSize, descending: true, want: []string{"A.md", "a.txt", "c.go", "b.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := NewComparer(tt.key, tt.descending, tt.caseSensitive)
			assert.Equal(t, tt.want, sorted(entries, cmp))
		})
	}
}

func TestCompareNames(t *testing.T) {
	assert.Zero(t, CompareNames("ABC", "abc", false))
	assert.NotZero(t, CompareNames("ABC", "abc", true))
	assert.Negative(t, CompareNames("FolderLevel1.txt", "FolderLevel1_x.txt", false))
	assert.Negative(t, CompareNames("B", "a", true))
}
