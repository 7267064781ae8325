package paths

import (
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/logging"
)

// Environment variable names
const (
	// EnvRoot overrides project root discovery
	EnvRoot = "PREPENV_ROOT"

	// EnvLocalAppData is the Windows local application data directory
	EnvLocalAppData = "LOCALAPPDATA"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// ScriptsMarker must exist under a root derived from the executable's
// location before that root is trusted
const ScriptsMarker = "tests/scripts/config_files"

// RootSource records how the project root was found.
type RootSource string

const (
	RootFromFlag      RootSource = "flag"
	RootFromEnv       RootSource = "env"
	RootFromScriptDir RootSource = "scripts-dir"
	RootFromExe       RootSource = "executable"
	RootFromGit       RootSource = "git"
	RootFromCwd       RootSource = "cwd"
)

// Environment is the explicit form of everything prepenv reads from the
// machine. All paths use forward slashes.
type Environment struct {
	Home         string
	LocalAppData string
	ProjectRoot  string
	RootSource   RootSource
}

// UsedFallback reports whether the project root is just the working directory.
func (e Environment) UsedFallback() bool {
	return e.RootSource == RootFromCwd
}

// Options controls Resolve. The function fields default to the real OS
// lookups when nil.
type Options struct {
	Root       string
	ScriptsDir string

	Getenv      func(string) string
	UserHomeDir func() (string, error)
	Getwd       func() (string, error)
	GitRoot     func() (string, error)
	Executable  func() (string, error)
	Stat        func(string) (os.FileInfo, error)
}

func (o *Options) setDefaults() {
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.UserHomeDir == nil {
		o.UserHomeDir = os.UserHomeDir
	}
	if o.Getwd == nil {
		o.Getwd = os.Getwd
	}
	if o.GitRoot == nil {
		o.GitRoot = findGitRoot
	}
	if o.Executable == nil {
		o.Executable = os.Executable
	}
	if o.Stat == nil {
		o.Stat = os.Stat
	}
}

// Resolve builds the Environment for this run.
func Resolve(opts Options) (Environment, error) {
	opts.setDefaults()
	logger := logging.GetLogger("paths")

	home, err := resolveHome(opts)
	if err != nil {
		return Environment{}, err
	}

	env := Environment{
		Home:         Normalize(home),
		LocalAppData: Normalize(opts.Getenv(EnvLocalAppData)),
	}

	root, source, err := resolveRoot(opts, home)
	if err != nil {
		return Environment{}, err
	}
	env.ProjectRoot = Normalize(root)
	env.RootSource = source

	logger.Debug().
		Str("home", env.Home).
		Str("localAppData", env.LocalAppData).
		Str("projectRoot", env.ProjectRoot).
		Str("rootSource", string(source)).
		Msg("Resolved environment")

	return env, nil
}

func resolveHome(opts Options) (string, error) {
	home, err := opts.UserHomeDir()
	if err == nil && home != "" {
		return home, nil
	}
	if home = opts.Getenv(EnvHome); home != "" {
		return home, nil
	}
	if err == nil {
		return "", errors.New(errors.ErrHomeUnresolved, "user home directory is empty")
	}
	return "", errors.Wrap(err, errors.ErrHomeUnresolved, "cannot resolve user home directory")
}

func resolveRoot(opts Options, home string) (string, RootSource, error) {
	if opts.Root != "" {
		root, err := absolute(ExpandHome(opts.Root, home))
		return root, RootFromFlag, err
	}

	if root := opts.Getenv(EnvRoot); root != "" {
		root, err := absolute(ExpandHome(root, home))
		return root, RootFromEnv, err
	}

	if opts.ScriptsDir != "" {
		dir, err := absolute(ExpandHome(opts.ScriptsDir, home))
		if err != nil {
			return "", RootFromScriptDir, err
		}
		return ProjectRootFromScriptDir(dir), RootFromScriptDir, nil
	}

	if root, ok := rootFromExecutable(opts); ok {
		return root, RootFromExe, nil
	}

	if gitRoot, err := opts.GitRoot(); err == nil && gitRoot != "" {
		return gitRoot, RootFromGit, nil
	}

	cwd, err := opts.Getwd()
	if err != nil {
		return "", RootFromCwd, errors.Wrap(err, errors.ErrRootUnresolved, "failed to get current directory")
	}
	return cwd, RootFromCwd, nil
}

// rootFromExecutable applies the scripts-dir rule to the directory holding
// the running binary. Installed binaries live elsewhere, so the candidate is
// only used when it contains ScriptsMarker.
func rootFromExecutable(opts Options) (string, bool) {
	exe, err := opts.Executable()
	if err != nil || exe == "" {
		return "", false
	}
	root := ProjectRootFromScriptDir(filepath.Dir(exe))
	info, err := opts.Stat(filepath.Join(filepath.FromSlash(root), filepath.FromSlash(ScriptsMarker)))
	if err != nil || !info.IsDir() {
		return "", false
	}
	return root, true
}

func absolute(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRootUnresolved, "failed to get absolute path for %s", p)
	}
	return abs, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrRootUnresolved, "git root is empty")
	}
	return gitRoot, nil
}

// Normalize replaces every backslash with a forward slash.
func Normalize(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ProjectRootFromScriptDir returns the directory two levels above dir, the
// layout the bootstrap tooling assumes (e.g. <root>/tests/scripts).
func ProjectRootFromScriptDir(dir string) string {
	dir = strings.TrimSuffix(Normalize(dir), "/")
	return path.Dir(path.Dir(dir))
}

// ExpandHome expands a leading ~ against home
func ExpandHome(p, home string) string {
	if p == "" || p[0] != '~' || home == "" {
		return p
	}
	if len(p) == 1 {
		return home
	}
	// ~user is left alone
	if p[1] == '/' || p[1] == '\\' {
		return filepath.Join(home, p[2:])
	}
	return p
}
