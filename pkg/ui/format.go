// Package ui decides how bls output is presented on the current terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when styled output is used.
type ColorMode int

const (
	// ColorAuto styles output written to a color capable terminal
	ColorAuto ColorMode = iota
	// ColorAlways styles output even when it is piped
	ColorAlways
	// ColorNever writes plain text
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on":
		return ColorAlways, nil
	case "never", "off":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode: %s", s)
	}
}

// UseColor reports whether output written to w should be styled.
func UseColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// Configure sets the lipgloss color profile for output written to w and
// reports whether styling is on.
func Configure(mode ColorMode, w io.Writer) bool {
	if !UseColor(mode, w) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	}
	if mode == ColorAlways {
		if f, ok := w.(*os.File); !ok || termenv.NewOutput(f).ColorProfile() == termenv.Ascii {
			lipgloss.SetColorProfile(termenv.ANSI256)
		}
	}
	return true
}
