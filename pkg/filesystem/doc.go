// Package filesystem provides the types.FS implementations used to list
// directories: the operating system and any afero filesystem.
package filesystem
