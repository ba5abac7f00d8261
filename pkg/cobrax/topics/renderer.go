package topics

// Renderer turns the raw content of a topic into terminal output. format is
// the topic file extension without the dot, e.g. "md" or "txt".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, _ string) string {
	return content
}
