package writers

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/globber"
	"github.com/arthur-debert/bls/pkg/types"
)

const (
	padChar     = '.'
	sizeWidth   = 15
	timeWidth   = 11
	dateLayout  = "2006-01-02"
	clockLayout = "3:04:05 PM"
	folderLabel = "<DIR>"
)

// ListOptions controls the text listing.
type ListOptions struct {
	// Details prefixes each path with attributes, modification time and
	// size.
	Details bool
}

// List writes one line per entry of results.
func List(out io.Writer, results *globber.Results, opts ListOptions) (int, error) {
	count := 0
	for results.Next() {
		e := results.Entry()
		line := e.Path
		if opts.Details {
			line = DetailLine(e)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return count, errors.Wrap(err, errors.ErrFileWrite, "failed to write listing")
		}
		count++
	}
	return count, results.Err()
}

// DetailLine formats an entry as "attrs  date time  size  path". Entries
// whose metadata cannot be read show question marks.
func DetailLine(e *types.Entry) string {
	info, err := e.Info()
	if err != nil {
		return fmt.Sprintf("%s  %s  %s  %s",
			strings.Repeat("?", 4),
			strings.Repeat("?", len(dateLayout)+1+timeWidth),
			padLeft("?", sizeWidth),
			e.Path)
	}

	size := FormatSize(info.Size())
	if info.IsDir() {
		size = padLeft(folderLabel, sizeWidth)
	}
	return fmt.Sprintf("%s  %s  %s  %s", Attributes(e.Path, info), FormatTime(info.ModTime()), size, e.Path)
}

// Attributes renders four flags: d (folder), r (read-only), h (hidden dot
// name) and l (symbolic link), with '-' for each flag not set.
func Attributes(path string, info fs.FileInfo) string {
	flags := []byte("----")
	if info.IsDir() {
		flags[0] = 'd'
	}
	if info.Mode().Perm()&0o200 == 0 {
		flags[1] = 'r'
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		flags[2] = 'h'
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		flags[3] = 'l'
	}
	return string(flags)
}

// FormatTime renders t as "yyyy-mm-dd h:mm:ss AM" with the clock part right
// aligned.
func FormatTime(t time.Time) string {
	clock := t.Format(clockLayout)
	if len(clock) < timeWidth {
		clock = strings.Repeat(" ", timeWidth-len(clock)) + clock
	}
	return t.Format(dateLayout) + " " + clock
}

// FormatSize renders a byte count with thousands separators, switching to
// KB, MB, GB or TB when the count does not fit the column. The value is
// right aligned with padding dots.
func FormatSize(size int64) string {
	value := humanize.Comma(size)
	if len(value) <= sizeWidth {
		return padLeft(value, sizeWidth)
	}

	n := float64(size)
	for _, suffix := range []string{"KB", "MB", "GB"} {
		n /= 1024
		if n < 1000 {
			return scaled(n, suffix)
		}
	}
	return scaled(n/1024, "TB")
}

func scaled(n float64, suffix string) string {
	for _, format := range []string{"#,###.##", "#,###.#"} {
		value := humanize.FormatFloat(format, n) + " " + suffix
		if len(value) <= sizeWidth {
			return padLeft(value, sizeWidth)
		}
	}
	return padLeft(humanize.FormatFloat("#,###.", n)+" "+suffix, sizeWidth)
}

// padLeft right aligns value in width columns: one space, then padding
// dots in front. Values too long for the column are returned unchanged.
func padLeft(value string, width int) string {
	if len(value)+1 > width {
		return value
	}
	return strings.Repeat(string(padChar), width-len(value)-1) + " " + value
}

// WriteIgnored prints the ignored access failures, if any, after a blank
// line and a heading. heading may restyle the heading text; nil leaves it
// plain.
func WriteIgnored(out io.Writer, ignored *globber.IgnoredErrors, heading func(string) string) error {
	if ignored == nil || ignored.Len() == 0 {
		return nil
	}

	title := "Exceptions ignored:"
	if heading != nil {
		title = heading(title)
	}
	if _, err := fmt.Fprintf(out, "\n%s\n", title); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write ignored errors")
	}
	for _, msg := range ignored.Messages() {
		if _, err := fmt.Fprintf(out, "   %s\n", msg); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write ignored errors")
		}
	}
	return nil
}
