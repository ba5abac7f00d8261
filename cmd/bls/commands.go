package bls

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/bls/internal/version"
	"github.com/arthur-debert/bls/pkg/cobrax/topics"
	"github.com/arthur-debert/bls/pkg/config"
	"github.com/arthur-debert/bls/pkg/errors"
	"github.com/arthur-debert/bls/pkg/logging"
	"github.com/arthur-debert/bls/pkg/types"
	"github.com/arthur-debert/bls/pkg/ui"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command. Without a subcommand
// the root command lists files.
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity int
		color     string
		flags     globFlags
	)

	rootCmd := &cobra.Command{
		Use:     "bls [include-globs...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			mode, err := ui.ParseColorMode(color)
			if err != nil {
				return fmt.Errorf(MsgErrColorMode, err)
			}
			ui.Configure(mode, cmd.OutOrStdout())
			logging.LogCommand(cmd.CommandPath(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runList(cmd, &flags, args, types.Files)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto", MsgFlagColor)
	flags.addListFlags(rootCmd, true)

	rootCmd.AddGroup(
		&cobra.Group{ID: "list", Title: "LIST COMMANDS:"},
		&cobra.Group{ID: "write", Title: "FILE COMMANDS:"},
		&cobra.Group{ID: "misc", Title: "MISC:"},
	)
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd("list-files", MsgListFilesShort, types.Files, "files"))
	rootCmd.AddCommand(newListCmd("list-folders", MsgListFoldersShort, types.Folders, "folders"))
	rootCmd.AddCommand(newSearchPathCmd())
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newZipCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		tm, err := topics.Initialize(rootCmd, source, topics.Options{Renderer: topics.NewGlamourRenderer()})
		if err == nil {
			globHelp := tm.Command("glob-help", "glob", MsgGlobHelpShort, "glob")
			globHelp.GroupID = "misc"
			rootCmd.AddCommand(globHelp)
		} else {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func newListCmd(use, short string, kind types.EntityKind, alias string) *cobra.Command {
	var flags globFlags
	cmd := &cobra.Command{
		Use:     use + " <include-globs...>",
		Aliases: []string{alias},
		Short:   short,
		GroupID: "list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, &flags, args, kind)
		},
	}
	flags.addListFlags(cmd, true)
	return cmd
}

func newSearchPathCmd() *cobra.Command {
	var flags globFlags
	cmd := &cobra.Command{
		Use:     "search-path <include-globs...>",
		Aliases: []string{"path"},
		Short:   MsgSearchPathShort,
		GroupID: "list",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bases := pathFolders(os.Getenv("PATH"))
			if len(bases) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrEmptyPath)
			}
			flags.basePaths = bases
			return runList(cmd, &flags, args, types.Files)
		},
	}
	flags.addListFlags(cmd, false)
	return cmd
}

func newCopyCmd() *cobra.Command {
	var (
		flags   globFlags
		target  string
		replace bool
	)
	cmd := &cobra.Command{
		Use:     "copy-files <include-globs...>",
		Aliases: []string{"copy"},
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		GroupID: "write",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd, &flags, args, target, replace)
		},
	}
	flags.addWriterFlags(cmd)
	cmd.Flags().StringVarP(&target, "target-path", "t", "", MsgFlagTargetPath)
	cmd.Flags().BoolVarP(&replace, "replace-files", "r", false, MsgFlagReplaceFiles)
	_ = cmd.MarkFlagRequired("target-path")
	_ = cmd.MarkFlagDirname("target-path")
	return cmd
}

func newZipCmd() *cobra.Command {
	var (
		flags   globFlags
		zipFile string
		replace bool
		reject  bool
	)
	cmd := &cobra.Command{
		Use:     "zip-files <include-globs...>",
		Aliases: []string{"zip"},
		Short:   MsgZipShort,
		Long:    MsgZipLong,
		GroupID: "write",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZip(cmd, &flags, args, zipFile, replace, reject)
		},
	}
	flags.addWriterFlags(cmd)
	cmd.Flags().StringVarP(&zipFile, "zip-file", "z", "", MsgFlagZipFile)
	cmd.Flags().BoolVarP(&replace, "replace-files", "r", false, MsgFlagZipReplace)
	cmd.Flags().BoolVarP(&reject, "error-on-file-exist", "e", false, MsgFlagZipError)
	cmd.MarkFlagsMutuallyExclusive("replace-files", "error-on-file-exist")
	_ = cmd.MarkFlagRequired("zip-file")
	_ = cmd.MarkFlagFilename("zip-file", "zip")
	return cmd
}

func newEncodeCmd() *cobra.Command {
	var (
		flags   globFlags
		target  string
		replace bool
	)
	cmd := &cobra.Command{
		Use:     "encode-files <include-globs...>",
		Aliases: []string{"encode"},
		Short:   MsgEncodeShort,
		Long:    MsgEncodeLong,
		GroupID: "write",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, &flags, args, target, replace)
		},
	}
	flags.addEncodingFlags(cmd)
	cmd.Flags().StringVarP(&target, "target-path", "t", "", MsgFlagTargetPath)
	cmd.Flags().BoolVarP(&replace, "replace-files", "r", false, MsgFlagReplaceFiles)
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var (
		flags   globFlags
		target  string
		replace bool
		decoded string
	)
	cmd := &cobra.Command{
		Use:     "decode-files <include-globs...>",
		Aliases: []string{"decode"},
		Short:   MsgDecodeShort,
		Long:    MsgDecodeLong,
		GroupID: "write",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, &flags, args, target, replace, decoded)
		},
	}
	flags.addEncodingFlags(cmd)
	cmd.Flags().StringVarP(&target, "target-path", "t", "", MsgFlagTargetPath)
	cmd.Flags().BoolVarP(&replace, "replace-files", "r", false, MsgFlagReplaceFiles)
	cmd.Flags().StringVar(&decoded, "decoded-extension", "", MsgFlagDecodedExtension)
	return cmd
}

func newConfigCmd() *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.DefaultConfigContent())
				return err
			}

			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			if len(cfg.Sources) == 0 {
				_, _ = fmt.Fprint(out, MsgConfigNoSource)
			}
			for _, source := range cfg.Sources {
				_, _ = fmt.Fprintf(out, MsgConfigSources, source)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, v, commit, date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, _ := version.Info()
			header := &doc.GenManHeader{
				Title:   "BLS",
				Section: "1",
				Source:  "bls " + v,
				Manual:  "bls manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
