package paths

import (
	"path/filepath"
	"strings"
)

// Platform describes the directory separators of an operating system.
type Platform struct {
	// Separator is the primary separator, '\' on Windows and '/' elsewhere.
	Separator byte
	// AltSeparator is the secondary separator accepted by the OS. It equals
	// Separator on systems that only know one.
	AltSeparator byte
}

// NewPlatform returns the Platform for a primary separator.
func NewPlatform(separator byte) Platform {
	if separator == '\\' {
		return Platform{Separator: '\\', AltSeparator: '/'}
	}
	return Platform{Separator: separator, AltSeparator: separator}
}

// Current is the platform the process runs on.
var Current = NewPlatform(filepath.Separator)

// Translates reports whether the platform has two distinct separators.
func (p Platform) Translates() bool {
	return p.Separator != p.AltSeparator
}

// ToPrimary replaces alternate separators with the primary one.
func (p Platform) ToPrimary(path string) string {
	if !p.Translates() {
		return path
	}
	return strings.ReplaceAll(path, string(p.AltSeparator), string(p.Separator))
}

// ToAlternate replaces primary separators with the alternate one.
func (p Platform) ToAlternate(path string) string {
	if !p.Translates() {
		return path
	}
	return strings.ReplaceAll(path, string(p.Separator), string(p.AltSeparator))
}

// ToPrimarySeparators converts path to the separators of the current
// platform. It is applied to every path reported to the user.
func ToPrimarySeparators(path string) string {
	return Current.ToPrimary(path)
}

// ToAlternateSeparators converts path to the alternate separator of the
// current platform.
func ToAlternateSeparators(path string) string {
	return Current.ToAlternate(path)
}
