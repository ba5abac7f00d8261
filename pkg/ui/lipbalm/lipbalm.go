package lipbalm

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// StyleMap maps tag names to the styles they apply.
type StyleMap map[string]lipgloss.Style

// noFormatTag holds text shown only when styles are off.
const noFormatTag = "no-format"

var defaultRenderer = lipgloss.DefaultRenderer()

// SetDefaultRenderer sets the renderer whose color profile decides whether
// styles are applied. It also becomes the lipgloss default renderer.
func SetDefaultRenderer(r *lipgloss.Renderer) {
	defaultRenderer = r
	lipgloss.SetDefaultRenderer(r)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape protects text inserted in a tagged template from being read as
// markup.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Render executes tmpl as a Go template with data, then expands its style
// tags. The template can call esc to escape values.
func Render(tmpl string, data interface{}, styles StyleMap) (string, error) {
	t, err := template.New("lipbalm").Funcs(template.FuncMap{"esc": Escape}).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return ExpandTags(buf.String(), styles)
}

// ExpandTags replaces each tag of input with its content rendered in the
// style of the same name. Unknown tags keep their content unstyled. Input
// that is not well formed is returned unchanged.
func ExpandTags(input string, styles StyleMap) (string, error) {
	root, ok := parse(input)
	if !ok {
		return input, nil
	}
	color := defaultRenderer.ColorProfile() != termenv.Ascii
	return expand(root, styles, color), nil
}

// StripTags returns the text of input without any tag.
func StripTags(input string) string {
	root, ok := parse(input)
	if !ok {
		return input
	}
	return expand(root, nil, false)
}

func parse(input string) (*etree.Element, bool) {
	if input == "" {
		return nil, false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<lipbalm>" + input + "</lipbalm>"); err != nil {
		return nil, false
	}
	root := doc.Root()
	return root, root != nil
}

func expand(el *etree.Element, styles StyleMap, color bool) string {
	var b strings.Builder
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			inner := expand(t, styles, color)
			switch {
			case t.Tag == noFormatTag:
				if !color {
					b.WriteString(inner)
				}
			case color:
				if style, ok := styles[t.Tag]; ok {
					inner = style.Render(inner)
				}
				b.WriteString(inner)
			default:
				b.WriteString(inner)
			}
		}
	}
	return b.String()
}
