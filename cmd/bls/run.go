package bls

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/bls/pkg/config"
	"github.com/arthur-debert/bls/pkg/globber"
	"github.com/arthur-debert/bls/pkg/types"
	"github.com/arthur-debert/bls/pkg/ui/lipbalm"
	"github.com/arthur-debert/bls/pkg/ui/styles"
	"github.com/arthur-debert/bls/pkg/writers"
)

func warningHeading(s string) string {
	return styles.Render("Warning", s)
}

// runList prints the entries of a listing command followed by the ignored
// access errors.
func runList(cmd *cobra.Command, flags *globFlags, includes []string, kind types.EntityKind) error {
	cfg, err := loadConfig(flags.overrides(cmd))
	if err != nil {
		return err
	}
	g, err := globber.New(flags.options(cfg, includes, kind))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results := g.Execute()
	count, err := writers.List(out, results, writers.ListOptions{Details: flags.details})
	if err != nil {
		return err
	}
	log.Debug().Int("count", count).Str("kind", kind.String()).Msg("Listing complete")
	return writers.WriteIgnored(out, results.IgnoredErrors(), warningHeading)
}

// startWriter validates the includes of a file writing command and starts
// its globber.
func startWriter(cmd *cobra.Command, flags *globFlags, includes, extraExcludes []string) (*globber.Results, *config.Config, error) {
	if err := writers.CheckIncludes(includes); err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(flags.overrides(cmd))
	if err != nil {
		return nil, nil, err
	}
	opts := flags.writerOptions(cfg, includes)
	opts.ExcludeGlobs = append(opts.ExcludeGlobs, extraExcludes...)

	g, err := globber.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return g.Execute(), cfg, nil
}

// finishWriter reports the outcome of a file writing command on stderr,
// keeping stdout for the ignored errors.
func finishWriter(cmd *cobra.Command, results *globber.Results, tmpl string, count int, target string) error {
	msg, err := lipbalm.Render(tmpl, struct {
		Count  int
		Target string
	}{count, target}, styles.StyleRegistry)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return writers.WriteIgnored(cmd.OutOrStdout(), results.IgnoredErrors(), warningHeading)
}

func runCopy(cmd *cobra.Command, flags *globFlags, includes []string, target string, replace bool) error {
	results, _, err := startWriter(cmd, flags, includes, nil)
	if err != nil {
		return err
	}
	count, err := writers.Copy(results, writers.FileOptions{TargetDir: target, Replace: replace})
	if err != nil {
		return err
	}
	return finishWriter(cmd, results, MsgCopied, count, target)
}

func runZip(cmd *cobra.Command, flags *globFlags, includes []string, zipFile string, replace, reject bool) error {
	var excludes []string
	if self, ok := relativeTo(flags.basePathOrDot(), zipFile); ok {
		excludes = append(excludes, self, self+".tmp")
	}
	results, cfg, err := startWriter(cmd, flags, includes, excludes)
	if err != nil {
		return err
	}

	policy := writers.AppendDuplicates
	switch {
	case replace:
		policy = writers.ReplaceDuplicates
	case reject:
		policy = writers.RejectDuplicates
	}
	count, err := writers.Zip(results, writers.ZipOptions{
		ZipFile:       zipFile,
		OnDuplicate:   policy,
		CaseSensitive: cfg.CaseSensitive,
	})
	if err != nil {
		return err
	}
	return finishWriter(cmd, results, MsgZipped, count, zipFile)
}

func runEncode(cmd *cobra.Command, flags *globFlags, includes []string, target string, replace bool) error {
	results, cfg, err := startWriter(cmd, flags, includes, nil)
	if err != nil {
		return err
	}
	if target == "" {
		target = flags.basePathOrDot()
	}
	count, err := writers.Encode(results, writers.FileOptions{TargetDir: target, Replace: replace}, cfg.EncodedExtension)
	if err != nil {
		return err
	}
	return finishWriter(cmd, results, MsgEncoded, count, target)
}

func runDecode(cmd *cobra.Command, flags *globFlags, includes []string, target string, replace bool, decodedExtension string) error {
	results, cfg, err := startWriter(cmd, flags, includes, nil)
	if err != nil {
		return err
	}
	if target == "" {
		target = flags.basePathOrDot()
	}
	count, err := writers.Decode(results, writers.FileOptions{TargetDir: target, Replace: replace}, cfg.EncodedExtension, decodedExtension)
	if err != nil {
		return err
	}
	return finishWriter(cmd, results, MsgDecoded, count, target)
}

// pathFolders splits a $PATH value into its non-blank folders.
func pathFolders(value string) []string {
	var folders []string
	for _, dir := range filepath.SplitList(value) {
		if strings.TrimSpace(dir) != "" {
			folders = append(folders, dir)
		}
	}
	return folders
}

// relativeTo returns name relative to base, with '/' separators, when name
// lies below base.
func relativeTo(base, name string) (string, bool) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	absName, err := filepath.Abs(name)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absName)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
