/*
Package lipbalm renders short status lines written with XML-like style tags.

A tag name is a key of the StyleMap; its content is rendered with that lipgloss
style when the default renderer has colour, and left plain otherwise:

	msg, err := lipbalm.Render(
		"<Count>{{.Count}}</Count> file(s) copied to <FilePath>{{esc .Target}}</FilePath>",
		data, styles.StyleRegistry)

Render runs text/template first and then ExpandTags. StripTags drops all tags.
Tags missing from the StyleMap keep their content unstyled.

# No-format content

<no-format> content is shown only without colour, for markers that a style
already conveys:

	<Warning>skipped</Warning><no-format> (!)</no-format>

# Markup safety

Values inserted in a template may contain '&' or '<'. Pass them through the
esc template function, or Escape, so they are read as text. Input that is not
well formed is returned unchanged.
*/
package lipbalm
