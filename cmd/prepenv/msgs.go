package prepenv

// Command descriptions
const (
	MsgRootShort = "Generate machine-specific build configuration for the test build"
	MsgRootLong  = `prepenv resolves local paths (your home directory, scoop package roots, the
project root) and splices them into the .clangd, CMakeLists.txt and
CMakePresets.json templates under tests/scripts/config_files.

Running prepenv with no command is the same as "prepenv run".`
	MsgRunShort        = "Write .clangd, tests/CMakeLists.txt and tests/CMakePresets.json"
	MsgPathsShort      = "Show the resolved environment and computed paths"
	MsgCheckShort      = "Report outputs that are missing or out of date"
	MsgCheckLong       = "Check renders every template and compares it with the file on disk. It exits non-zero when any output would change."
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot       = "Project root (default: PREPENV_ROOT, then two levels above the executable, then the git root, then the current directory)"
	MsgFlagScriptsDir = "Directory two levels below the project root, e.g. tests/scripts"
	MsgFlagConfig     = "Config file (default: .prepenv.toml or .prepenv.yaml at the project root)"
	MsgFlagDryRun     = "Show what would change without writing"
	MsgFlagOnly       = "Process only the named target (repeatable)"
	MsgFlagSet        = "Override a config key, e.g. --set layout.boost_version=1.89.0 (repeatable)"
	MsgFlagFormat     = "Output format: toml or yaml"
	MsgFlagWrite      = "Write a commented starter .prepenv.toml to the project root"
	MsgFlagDiff       = "Show a diff for every out-of-date output"
)

// Status messages
const (
	MsgFallbackWarning  = "Warning: no project root found, using current directory: %s\n"
	MsgDryRunNotice     = "\nDRY RUN MODE - No changes were made"
	MsgTargetLine       = "  %s %-13s %s\n"
	MsgWarningLine      = "    warning: %s\n"
	MsgUnchangedSuffix  = "(unchanged)"
	MsgAllCurrent       = "All outputs are up to date."
	MsgConfigWritten    = "Wrote %s\n"
	MsgConfigExists     = "%s already exists, not overwriting"
	MsgVersionFormat    = "prepenv version %s\n  commit: %s\n  built:  %s\n"
	MsgEnvSection       = "Environment"
	MsgLayoutSection    = "Computed paths"
	MsgRootSourceFormat = "%s (from %s)"
)
