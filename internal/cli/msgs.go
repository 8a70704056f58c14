package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Assemble a directory tree into a single text snapshot"
	MsgVersionShort = "Print version information"

	// Status messages
	MsgSnapshotWritten  = "wrote %s (%d files)"
	MsgRepoTreeWritten  = "wrote %s (%d repositories)"
	MsgFileListWritten  = "wrote %s (%d files)"
	MsgClipboardCopied  = "copied to clipboard"
	MsgClipboardSkipped = "clipboard copy failed: %v"

	// Flag descriptions
	MsgFlagZoom             = "Snapshot resolution: repos, files or contents"
	MsgFlagOut              = "Output file (default: <tmp>/<project>-<suffix>.txt)"
	MsgFlagMaxKB            = "Per-file size cap in KB; larger files are skipped"
	MsgFlagOnly             = "Only include files matching PATTERN (repeatable)"
	MsgFlagExclude          = "Exclude files matching PATTERN (repeatable)"
	MsgFlagAllow            = "Re-allow files excluded by default (requires --only)"
	MsgFlagNoIpynbTruncate  = "Keep notebook cell outputs instead of stripping them"
	MsgFlagDepth            = "Nested repository recursion depth, -1 for unlimited"
	MsgFlagNoGit            = "Walk the filesystem instead of asking git for files"
	MsgFlagClipboard        = "Also copy the snapshot to the system clipboard"
	MsgFlagClipboardTimeout = "Seconds to wait for the clipboard tool"
	MsgFlagQuiet            = "Suppress status output, warnings only"
	MsgFlagVerbose          = "Increase verbosity (-v DEBUG, -vv TRACE)"
)

// MsgRootLong describes the command in help output
const MsgRootLong = `catp walks one or more directory trees and concatenates the files it
finds into a single text artifact, with a banner line before each file.

Inside a Git working tree, catp asks git for the tracked and
untracked-but-not-ignored files instead of walking the filesystem, so
ignored build artifacts never leak into the snapshot. Nested
repositories are included up to --depth levels.

Default include and exclude patterns come from the built-in
configuration, overridable per user ($XDG_CONFIG_HOME/catp/catp.toml)
and per project (.catp.toml at the root).`
