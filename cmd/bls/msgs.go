package bls

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "List, copy and archive files matching glob expressions"
	MsgListFilesShort   = "List the files matching the include globs"
	MsgListFoldersShort = "List the folders matching the include globs"
	MsgSearchPathShort  = "List the files matching the include globs in every $PATH folder"
	MsgCopyShort        = "Copy the matching files to a folder"
	MsgZipShort         = "Add the matching files to a zip archive"
	MsgEncodeShort      = "Write base64 encoded copies of the matching files"
	MsgDecodeShort      = "Decode base64 encoded files"
	MsgGlobHelpShort    = "Explain the glob syntax"
	MsgConfigShort      = "Show the effective configuration"
	MsgVersionShort     = "Print version information"
	MsgManShort         = "Write the man page to stdout"
	MsgCompletionShort  = "Generate shell completion script"

	// Status messages
	MsgCopied         = "<Count>{{.Count}}</Count> file(s) copied to <FilePath>{{esc .Target}}</FilePath>"
	MsgZipped         = "<Count>{{.Count}}</Count> file(s) added to <FilePath>{{esc .Target}}</FilePath>"
	MsgEncoded        = "<Count>{{.Count}}</Count> file(s) encoded to <FilePath>{{esc .Target}}</FilePath>"
	MsgDecoded        = "<Count>{{.Count}}</Count> file(s) decoded to <FilePath>{{esc .Target}}</FilePath>"
	MsgConfigSources  = "# loaded from: %s\n"
	MsgConfigNoSource = "# no config files found, showing defaults\n"
	MsgVersionFormat  = "bls version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrWorkingDir   = "failed to determine the working directory: %w"
	MsgErrColorMode    = "invalid --color value: %w"
	MsgErrEmptyPath    = "$PATH is empty"

	// Flag descriptions
	MsgFlagVerbose          = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagColor            = "Color output: auto, always or never"
	MsgFlagExclude          = "Exclude glob (repeatable)"
	MsgFlagBasePaths        = "Base path to glob from (repeatable, default is the working directory)"
	MsgFlagBasePath         = "Base path to glob from (default is the working directory)"
	MsgFlagFullyQualified   = "Print fully qualified paths"
	MsgFlagCaseSensitive    = "Match globs case sensitively"
	MsgFlagSort             = "Sort by none, name, extension, date or size"
	MsgFlagDescending       = "Reverse the sort order"
	MsgFlagAllowDuplicates  = "Print every match of overlapping base paths, without buffering"
	MsgFlagAbortOnAccess    = "Stop at the first folder that cannot be read"
	MsgFlagDetails          = "Show attributes, modification time and size"
	MsgFlagTargetPath       = "Folder the files are written below"
	MsgFlagReplaceFiles     = "Overwrite files that already exist"
	MsgFlagZipFile          = "Zip archive to create or update"
	MsgFlagZipReplace       = "Replace entries already in the archive"
	MsgFlagZipError         = "Fail when an entry is already in the archive"
	MsgFlagEncodedExtension = "Extension of encoded files"
	MsgFlagDecodedExtension = "Extension appended to decoded files"
	MsgFlagDefaults         = "Print the built-in defaults instead"
)

// Long messages loaded from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/zip-long.txt
	msgZipLongRaw string
	MsgZipLong    = strings.TrimSpace(msgZipLongRaw)

	//go:embed msgs/encode-long.txt
	msgEncodeLongRaw string
	MsgEncodeLong    = strings.TrimSpace(msgEncodeLongRaw)

	//go:embed msgs/decode-long.txt
	msgDecodeLongRaw string
	MsgDecodeLong    = strings.TrimSpace(msgDecodeLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
