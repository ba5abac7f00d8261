package writers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/globber"
	"github.com/arthur-debert/bls/pkg/logging"
	"github.com/arthur-debert/bls/pkg/types"
)

// DuplicatePolicy decides what happens when an archive already holds an
// entry with the name of a matched file.
type DuplicatePolicy int

const (
	// AppendDuplicates adds the file next to the existing entry.
	AppendDuplicates DuplicatePolicy = iota
	// ReplaceDuplicates drops every existing entry with that name.
	ReplaceDuplicates
	// RejectDuplicates fails with ErrFileExists.
	RejectDuplicates
)

// ZipOptions configures Zip.
type ZipOptions struct {
	// Source reads the matched files (optional, defaults to the OS).
	Source afero.Fs
	// Target holds the archive (optional, defaults to the OS).
	Target afero.Fs
	// ZipFile is the archive to create or update.
	ZipFile string
	// OnDuplicate applies to names already in the archive.
	OnDuplicate DuplicatePolicy
	// CaseSensitive controls how archive names are compared.
	CaseSensitive bool
}

// Zip adds every matched file to opts.ZipFile, creating the archive when it
// does not exist. Existing entries are carried over. The archive is written
// to a temporary file next to it and renamed into place once complete.
func Zip(results *globber.Results, opts ZipOptions) (int, error) {
	if opts.Source == nil {
		opts.Source = afero.NewOsFs()
	}
	if opts.Target == nil {
		opts.Target = afero.NewOsFs()
	}
	logger := logging.GetLogger("writers.zip")
	done := logging.LogOperationStart(logger, "zip")
	defer done()

	var entries []*types.Entry
	for results.Next() {
		entries = append(entries, results.Entry())
	}
	if err := results.Err(); err != nil {
		return 0, err
	}

	existing, closeExisting, err := openArchive(opts.Target, opts.ZipFile)
	if err != nil {
		return 0, err
	}
	defer closeExisting()

	keep, err := carriedEntries(existing, entries, opts)
	if err != nil {
		return 0, err
	}

	tmpName := opts.ZipFile + ".tmp"
	if err := opts.Target.MkdirAll(filepath.Dir(opts.ZipFile), 0755); err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create folder for %s", opts.ZipFile)
	}
	tmp, err := opts.Target.Create(tmpName)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", tmpName).WithDetail("path", tmpName)
	}

	count, err := writeArchive(tmp, keep, entries, opts)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, errors.ErrFileWrite, "cannot close %s", tmpName)
	}
	if err != nil {
		_ = opts.Target.Remove(tmpName)
		return 0, err
	}

	closeExisting()
	if err := opts.Target.Rename(tmpName, opts.ZipFile); err != nil {
		_ = opts.Target.Remove(tmpName)
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", opts.ZipFile).WithDetail("path", opts.ZipFile)
	}

	logger.Info().Str("archive", opts.ZipFile).Int("added", count).Int("kept", len(keep)).Msg("Archive written")
	return count, nil
}

// EntryName is the archive name of a listed path.
func EntryName(path string) string {
	return strings.TrimLeft(filepath.ToSlash(path), "/")
}

// openArchive reads the central directory of an existing archive. A
// missing archive reads as empty. The returned close function may be
// called more than once.
func openArchive(target afero.Fs, name string) (*zip.Reader, func(), error) {
	noop := func() {}
	f, err := target.Open(name)
	if err != nil {
		exists, _ := afero.Exists(target, name)
		if !exists {
			return nil, noop, nil
		}
		return nil, noop, errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", name).WithDetail("path", name)
	}

	closed := false
	closeFn := func() {
		if !closed {
			closed = true
			_ = f.Close()
		}
	}

	info, err := f.Stat()
	if err != nil {
		closeFn()
		return nil, noop, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", name).WithDetail("path", name)
	}
	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		closeFn()
		return nil, noop, errors.Wrapf(err, errors.ErrInvalidInput, "%s is not a zip archive", name).WithDetail("path", name)
	}
	return r, closeFn, nil
}

// carriedEntries returns the existing archive entries that survive the
// update, applying the duplicate policy.
func carriedEntries(existing *zip.Reader, entries []*types.Entry, opts ZipOptions) ([]*zip.File, error) {
	if existing == nil {
		return nil, nil
	}
	key := func(name string) string {
		name = strings.ReplaceAll(name, "\\", "/")
		if !opts.CaseSensitive {
			name = strings.ToUpper(name)
		}
		return name
	}

	added := make(map[string]bool, len(entries))
	for _, e := range entries {
		added[key(EntryName(e.Path))] = true
	}

	keep := make([]*zip.File, 0, len(existing.File))
	for _, f := range existing.File {
		if !added[key(f.Name)] {
			keep = append(keep, f)
			continue
		}
		switch opts.OnDuplicate {
		case RejectDuplicates:
			return nil, errors.Newf(errors.ErrFileExists, "zip already contains the file %q", f.Name).
				WithDetail("path", opts.ZipFile)
		case ReplaceDuplicates:
			continue
		default:
			keep = append(keep, f)
		}
	}
	return keep, nil
}

func writeArchive(w io.Writer, keep []*zip.File, entries []*types.Entry, opts ZipOptions) (int, error) {
	zw := zip.NewWriter(w)
	for _, f := range keep {
		if err := zw.Copy(f); err != nil {
			return 0, errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s from %s", f.Name, opts.ZipFile)
		}
	}

	count := 0
	for _, e := range entries {
		if err := addEntry(zw, opts.Source, e); err != nil {
			return count, err
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return count, errors.Wrap(err, errors.ErrFileWrite, fmt.Sprintf("cannot finish %s", opts.ZipFile))
	}
	return count, nil
}

func addEntry(zw *zip.Writer, source afero.Fs, e *types.Entry) error {
	modTime, err := sourceModTime(source, e)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", e.FullPath).WithDetail("path", e.FullPath)
	}

	dst, err := zw.CreateHeader(&zip.FileHeader{
		Name:     EntryName(e.Path),
		Method:   zip.Deflate,
		Modified: modTime,
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot add %s", e.Path).WithDetail("path", e.Path)
	}

	src, err := source.Open(e.FullPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", e.FullPath).WithDetail("path", e.FullPath)
	}
	defer func() {
		_ = src.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot add %s", e.Path).WithDetail("path", e.Path)
	}
	return nil
}
