package writers

import (
	"encoding/base64"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/globber"
	"github.com/arthur-debert/bls/pkg/logging"
	"github.com/arthur-debert/bls/pkg/paths"
	"github.com/arthur-debert/bls/pkg/types"
)

// DefaultEncodedExtension is appended by Encode and stripped by Decode.
const DefaultEncodedExtension = ".b64"

// FileOptions configures the writers that produce one file per entry.
type FileOptions struct {
	// Source reads the matched files (optional, defaults to the OS).
	Source afero.Fs
	// Target receives the written files (optional, defaults to the OS).
	Target afero.Fs
	// TargetDir is the folder entry paths are recreated below.
	TargetDir string
	// Replace overwrites existing target files instead of failing.
	Replace bool
}

func (o *FileOptions) defaults() {
	if o.Source == nil {
		o.Source = afero.NewOsFs()
	}
	if o.Target == nil {
		o.Target = afero.NewOsFs()
	}
}

// CheckIncludes rejects include globs climbing above the base path: their
// matches would be written outside the target folder.
func CheckIncludes(includes []string) error {
	for _, glob := range includes {
		segments := paths.SplitAndNormalize(glob)
		if len(segments) > 0 && segments[0] == paths.ParentDir {
			return errors.Newf(errors.ErrInvalidInput,
				"avoid %q folders in glob expressions when writing files: %q", paths.ParentDir, glob).
				WithDetail("glob", glob)
		}
	}
	return nil
}

type transform func(dst io.Writer, src io.Reader) error

func copyTransform(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

func encodeTransform(dst io.Writer, src io.Reader) error {
	enc := base64.NewEncoder(base64.StdEncoding, dst)
	if _, err := io.Copy(enc, src); err != nil {
		return err
	}
	return enc.Close()
}

func decodeTransform(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, base64.NewDecoder(base64.StdEncoding, src))
	return err
}

// Copy recreates every matched file below opts.TargetDir.
func Copy(results *globber.Results, opts FileOptions) (int, error) {
	return writeEach(results, opts, "copy", func(rel string) string { return rel }, copyTransform)
}

// Encode writes a base64 copy of every matched file below opts.TargetDir,
// with extension appended to the name.
func Encode(results *globber.Results, opts FileOptions, extension string) (int, error) {
	if extension == "" {
		extension = DefaultEncodedExtension
	}
	return writeEach(results, opts, "encode", func(rel string) string {
		return rel + extension
	}, encodeTransform)
}

// Decode writes the base64 decoded content of every matched file below
// opts.TargetDir. The encoded extension is removed from the name, compared
// without regard to case, and decodedExtension, if any, is appended.
func Decode(results *globber.Results, opts FileOptions, encodedExtension, decodedExtension string) (int, error) {
	if encodedExtension == "" {
		encodedExtension = DefaultEncodedExtension
	}
	return writeEach(results, opts, "decode", func(rel string) string {
		return DecodedName(rel, encodedExtension, decodedExtension)
	}, decodeTransform)
}

// DecodedName returns the name Decode writes rel to.
func DecodedName(rel, encodedExtension, decodedExtension string) string {
	if ext := filepath.Ext(rel); ext != "" && strings.EqualFold(ext, encodedExtension) {
		rel = strings.TrimSuffix(rel, ext)
	}
	return rel + decodedExtension
}

func writeEach(results *globber.Results, opts FileOptions, operation string, rename func(string) string, fn transform) (int, error) {
	opts.defaults()
	logger := logging.GetLogger("writers." + operation)
	done := logging.LogOperationStart(logger, operation)
	defer done()

	count := 0
	for results.Next() {
		e := results.Entry()
		rel := rename(e.Path)
		target := filepath.Join(opts.TargetDir, rel)

		if err := writeFile(opts, e, rel, target, fn); err != nil {
			return count, err
		}
		logger.Debug().Str("source", e.FullPath).Str("target", target).Msg("File written")
		count++
	}
	return count, results.Err()
}

// writeFile streams one entry through fn into target and gives target the
// modification time of the source.
func writeFile(opts FileOptions, e *types.Entry, rel, target string, fn transform) error {
	exists, err := afero.Exists(opts.Target, target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot check %s", target).WithDetail("path", target)
	}
	if exists && !opts.Replace {
		return errors.Newf(errors.ErrFileExists, "the file %q already exists", rel).WithDetail("path", target)
	}

	if err := opts.Target.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create folder for %s", target).WithDetail("path", target)
	}

	modTime, err := sourceModTime(opts.Source, e)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", e.FullPath).WithDetail("path", e.FullPath)
	}

	if err := stream(opts, e.FullPath, target, fn); err != nil {
		return err
	}

	if err := opts.Target.Chtimes(target, modTime, modTime); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set time of %s", target).WithDetail("path", target)
	}
	return nil
}

func stream(opts FileOptions, source, target string, fn transform) error {
	src, err := opts.Source.Open(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", source).WithDetail("path", source)
	}
	defer func() {
		_ = src.Close()
	}()

	dst, err := opts.Target.Create(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", target).WithDetail("path", target)
	}

	if err := fn(dst, src); err != nil {
		_ = dst.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target).WithDetail("path", target)
	}
	if err := dst.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot close %s", target).WithDetail("path", target)
	}
	return nil
}

func sourceModTime(source afero.Fs, e *types.Entry) (time.Time, error) {
	if info, err := e.Info(); err == nil {
		return info.ModTime(), nil
	}
	info, err := source.Stat(e.FullPath)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
