package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"glob.md":          {Data: []byte("# Globs\n\nUse `**` to recurse.\n")},
		"option-sort.txt":  {Data: []byte("Sort keys: name, extension, date, size")},
		"nested/paths.txt": {Data: []byte("Paths are relative to the base path")},
		"ignore.json":      {Data: []byte("{}")},
	}
}

func TestTopicManager_Load(t *testing.T) {
	tm := New(testSource(), Options{})
	require.NoError(t, tm.Load())

	assert.Equal(t, []string{"glob", "option-sort", "paths"}, tm.ListTopics())

	topic, ok := tm.GetTopic("paths")
	require.True(t, ok)
	assert.Equal(t, "Paths are relative to the base path", topic.Content)
	assert.Equal(t, ".txt", topic.Format())

	_, ok = tm.GetTopic("ignore")
	assert.False(t, ok)
}

func TestTopicManager_CustomExtensions(t *testing.T) {
	tm := New(testSource(), Options{Extensions: []string{".json"}})
	require.NoError(t, tm.Load())
	assert.Equal(t, []string{"ignore"}, tm.ListTopics())
}

func TestTopicManager_GetTopic_FlagStyle(t *testing.T) {
	tm := New(testSource(), Options{})
	require.NoError(t, tm.Load())

	for _, name := range []string{"sort", "--sort", "-sort", "option-sort"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-sort", topic.Name)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(content, format string) string {
	return format + ":" + strings.ToUpper(content)
}

func newRoot(t *testing.T) (*cobra.Command, *TopicManager, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "list", Short: "List things", Run: func(*cobra.Command, []string) {}})

	tm, err := Initialize(root, testSource(), Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, tm, &out
}

func TestInitialize_HelpTopic(t *testing.T) {
	root, _, out := newRoot(t)
	root.SetArgs([]string{"help", "glob"})
	require.NoError(t, root.Execute())

	assert.Equal(t, ".md:# GLOBS\n\nUSE `**` TO RECURSE.\n", out.String())
}

func TestInitialize_TopicList(t *testing.T) {
	root, _, out := newRoot(t)
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "General topics:\n  glob\n  paths\n")
	assert.Contains(t, out.String(), "Option topics:\n  --sort\n")
	assert.Contains(t, out.String(), "'app help <topic>'")
}

func TestInitialize_CommandHelp(t *testing.T) {
	root, _, out := newRoot(t)
	root.SetArgs([]string{"help", "list"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "List things")
}

func TestTopicManager_Command(t *testing.T) {
	root, tm, out := newRoot(t)
	root.AddCommand(tm.Command("glob-help", "glob", "Explain globs", "glob"))
	root.AddCommand(tm.Command("missing-help", "missing", "Nothing"))

	root.SetArgs([]string{"glob"})
	require.NoError(t, root.Execute())
	assert.Equal(t, ".md:# GLOBS\n\nUSE `**` TO RECURSE.\n", out.String())

	root.SetArgs([]string{"missing-help"})
	assert.Error(t, root.Execute())
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "as is", PlainRenderer{}.Render("as is", "md"))
}

func TestGlamourRenderer_NonMarkdown(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
	assert.Contains(t, r.Render("# Title\n\nbody", ".md"), "Title")
}
