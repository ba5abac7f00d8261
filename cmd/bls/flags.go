package bls

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bls/pkg/config"
	"github.com/arthur-debert/bls/pkg/globber"
	"github.com/arthur-debert/bls/pkg/types"
)

// globFlags holds the flags shared by the commands that run a globber.
type globFlags struct {
	excludes        []string
	basePaths       []string
	basePath        string
	fullyQualified  bool
	caseSensitive   bool
	sort            types.SortKey
	descending      bool
	allowDuplicates bool
	abortOnAccess   bool
	details         bool
	encodedExt      string
}

// addMatchFlags registers the flags every globbing command takes.
func (f *globFlags) addMatchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.excludes, "exclude", "x", nil, MsgFlagExclude)
	flags.BoolVarP(&f.caseSensitive, "case-sensitive", "c", false, MsgFlagCaseSensitive)
	flags.VarP(&f.sort, "sort", "s", MsgFlagSort)
	flags.BoolVar(&f.descending, "descending", false, MsgFlagDescending)
	flags.BoolVarP(&f.abortOnAccess, "abort-on-access-errors", "a", false, MsgFlagAbortOnAccess)

	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"none", "name", "extension", "date", "size"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// addListFlags registers the flags of the listing commands. withBases is
// false for search-path, whose base paths come from $PATH.
func (f *globFlags) addListFlags(cmd *cobra.Command, withBases bool) {
	f.addMatchFlags(cmd)
	flags := cmd.Flags()
	if withBases {
		flags.StringArrayVarP(&f.basePaths, "base-paths", "b", nil, MsgFlagBasePaths)
	}
	flags.BoolVarP(&f.fullyQualified, "fully-qualified-paths", "q", false, MsgFlagFullyQualified)
	flags.BoolVarP(&f.allowDuplicates, "allow-duplicates", "d", false, MsgFlagAllowDuplicates)
	flags.BoolVarP(&f.details, "details", "t", false, MsgFlagDetails)
}

// addWriterFlags registers the flags of the commands writing files. They
// glob from a single base path.
func (f *globFlags) addWriterFlags(cmd *cobra.Command) {
	f.addMatchFlags(cmd)
	cmd.Flags().StringVarP(&f.basePath, "base-path", "b", "", MsgFlagBasePath)
}

// addEncodingFlags registers the flags of the base64 writers.
func (f *globFlags) addEncodingFlags(cmd *cobra.Command) {
	f.addWriterFlags(cmd)
	cmd.Flags().StringVar(&f.encodedExt, "encoded-extension", "", MsgFlagEncodedExtension)
}

// overrides returns the config keys set by the flags given on the command
// line. Flags left at their defaults do not mask the configuration.
func (f *globFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	changed := cmd.Flags().Changed
	set := make(map[string]interface{})
	if changed("case-sensitive") {
		set["case_sensitive"] = f.caseSensitive
	}
	if changed("abort-on-access-errors") {
		set["abort_on_access_errors"] = f.abortOnAccess
	}
	if changed("allow-duplicates") {
		set["allow_duplicates"] = f.allowDuplicates
	}
	if changed("fully-qualified-paths") {
		set["fully_qualified"] = f.fullyQualified
	}
	if changed("sort") {
		set["sort"] = f.sort.String()
	}
	if changed("descending") {
		set["descending"] = f.descending
	}
	if changed("encoded-extension") {
		set["encoded_extension"] = f.encodedExt
	}
	return set
}

// loadConfig loads the configuration from the working directory with the
// given flag overrides on top.
func loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf(MsgErrWorkingDir, err)
	}
	return config.Load(wd, overrides)
}

// options builds the globber options of a run.
func (f *globFlags) options(cfg *config.Config, includes []string, kind types.EntityKind) globber.Options {
	basePaths := f.basePaths
	if f.basePath != "" {
		basePaths = []string{f.basePath}
	}

	return globber.Options{
		IncludeGlobs:        includes,
		ExcludeGlobs:        append(append([]string(nil), cfg.Exclude...), f.excludes...),
		BasePaths:           basePaths,
		FullyQualifiedPaths: cfg.FullyQualified,
		CaseSensitive:       cfg.CaseSensitive,
		Sort:                cfg.Sort,
		SortDescending:      cfg.Descending,
		AllowDuplicates:     cfg.AllowDuplicates,
		AbortOnAccessErrors: cfg.AbortOnAccessErrors,
		Kind:                kind,
	}
}

// writerOptions builds the globber options of a command writing files:
// paths stay relative to the single base path.
func (f *globFlags) writerOptions(cfg *config.Config, includes []string) globber.Options {
	opts := f.options(cfg, includes, types.Files)
	opts.FullyQualifiedPaths = false
	opts.AllowDuplicates = false
	return opts
}

func (f *globFlags) basePathOrDot() string {
	if f.basePath == "" {
		return "."
	}
	return f.basePath
}
