package writers

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/bls/pkg/globber"
)

func TestList(t *testing.T) {
	src := sourceFs(t, map[string]string{
		"a.txt":     "alpha",
		"sub/b.txt": "beta",
		"c.md":      "gamma",
	})

	var out bytes.Buffer
	n, err := List(&out, results(t, src, "**/*.txt"), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "a.txt\nsub/b.txt\n", out.String())
}

func TestList_Details(t *testing.T) {
	src := sourceFs(t, map[string]string{"a.txt": "alpha"})

	var out bytes.Buffer
	_, err := List(&out, results(t, src, "*.txt"), ListOptions{Details: true})
	require.NoError(t, err)

	assert.Equal(t, "----  2024-03-05  2:07:09 PM  ............. 5  a.txt\n", out.String())
}

type modeInfo struct {
	fs.FileInfo
	mode fs.FileMode
}

func (m modeInfo) Mode() fs.FileMode { return m.mode }
func (m modeInfo) IsDir() bool       { return m.mode.IsDir() }

func TestAttributes(t *testing.T) {
	tests := []struct {
		name string
		path string
		mode fs.FileMode
		want string
	}{
		{name: "plain file", path: "a.txt", mode: 0644, want: "----"},
		{name: "folder", path: "dir", mode: fs.ModeDir | 0755, want: "d---"},
		{name: "read-only", path: "a.txt", mode: 0444, want: "-r--"},
		{name: "dot file", path: "sub/.env", mode: 0600, want: "--h-"},
		{name: "symlink", path: "link", mode: fs.ModeSymlink | 0777, want: "---l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Attributes(tt.path, modeInfo{mode: tt.mode}))
		})
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2024-03-05  2:07:09 PM", FormatTime(fixedTime))
	assert.Equal(t, "2024-03-05 11:07:09 AM", FormatTime(time.Date(2024, 3, 5, 11, 7, 9, 0, time.UTC)))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "............. 0", FormatSize(0))
	assert.Equal(t, "......... 1,234", FormatSize(1234))
	assert.Equal(t, "999,999,999,999", FormatSize(999999999999))

	huge := FormatSize(1 << 50)
	assert.Len(t, huge, sizeWidth)
	assert.True(t, strings.HasSuffix(huge, " TB"), huge)
}

func TestWriteIgnored(t *testing.T) {
	t.Run("nothing ignored writes nothing", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, WriteIgnored(&out, globber.NewIgnoredErrors(), nil))
		assert.Empty(t, out.String())
	})

	t.Run("each message once", func(t *testing.T) {
		ignored := globber.NewIgnoredErrors()
		ignored.Add(stderrors.New("open /x: permission denied"))
		ignored.Add(stderrors.New("open /x: permission denied"))
		ignored.Add(stderrors.New("open /y: no such file or directory"))

		var out bytes.Buffer
		require.NoError(t, WriteIgnored(&out, ignored, strings.ToUpper))

		assert.Equal(t,
			"\nEXCEPTIONS IGNORED:\n   open /x: permission denied\n   open /y: no such file or directory\n",
			out.String())
	})
}
