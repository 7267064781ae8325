package prepenv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/proj"

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("PREPENV_ROOT", "")
	t.Setenv("LOCALAPPDATA", "C:\\Users\\tester\\AppData\\Local")
}

func execute(t *testing.T, p *testutil.Project, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(p.FS)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--root", p.Root}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func lineAt(content string, i int) string {
	return strings.SplitAfter(content, "\n")[i]
}

func TestRunWritesAllOutputs(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	stdout, _, err := execute(t, p)
	require.NoError(t, err)

	clangd := p.ReadFile(".clangd")
	assert.Equal(t, "      \"-I/proj\",\n", lineAt(clangd, 6))
	assert.Equal(t, "      \"-I/home/tester/scoop/apps/boost/1.88.0\",\n", lineAt(clangd, 9))

	cmake := p.ReadFile("tests/CMakeLists.txt")
	assert.Equal(t, "set(Boost_ROOT \"/home/tester/scoop/apps/boost/current\")\n", lineAt(cmake, 18))

	presets := p.ReadFile("tests/CMakePresets.json")
	assert.Equal(t, "        \"VCPKG_ROOT\": \"/home/tester/scoop/apps/vcpkg/current/\"\n", lineAt(presets, 8))

	for _, name := range []string{"clangd", "cmakelists", "cmakepresets"} {
		assert.Contains(t, stdout, name)
	}
}

func TestRunSubcommandMatchesRoot(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p, "run")
	require.NoError(t, err)
	assert.True(t, p.Exists("tests/CMakePresets.json"))
}

func TestRunTwiceReportsUnchanged(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p)
	require.NoError(t, err)
	first := p.ReadFile(".clangd")

	stdout, _, err := execute(t, p)
	require.NoError(t, err)
	assert.Equal(t, first, p.ReadFile(".clangd"))
	assert.Contains(t, stdout, MsgUnchangedSuffix)
}

func TestDryRunWritesNothing(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	stdout, _, err := execute(t, p, "--dry-run")
	require.NoError(t, err)

	assert.False(t, p.Exists(".clangd"))
	assert.False(t, p.Exists("tests/CMakeLists.txt"))
	assert.Contains(t, stdout, "DRY RUN MODE")
	assert.Contains(t, stdout, "+set(Boost_ROOT")
}

func TestOnlySelectsTargets(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p, "--only", "cmakelists")
	require.NoError(t, err)

	assert.True(t, p.Exists("tests/CMakeLists.txt"))
	assert.False(t, p.Exists(".clangd"))
	assert.False(t, p.Exists("tests/CMakePresets.json"))
}

func TestOnlyUnknownTarget(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p, "--only", "vscode")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
}

func TestSetOverridesLayout(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p, "--set", "layout.boost_version=1.89.0", "--only", "clangd")
	require.NoError(t, err)
	assert.Equal(t, "      \"-I/home/tester/scoop/apps/boost/1.89.0\",\n", lineAt(p.ReadFile(".clangd"), 9))
}

func TestRunMissingTemplate(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)
	require.NoError(t, p.FS.Remove(p.Path("tests/scripts/config_files/.clangd")))

	_, _, err := execute(t, p)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
	assert.False(t, p.Exists("tests/CMakeLists.txt"), "later targets are not processed")
}

func TestCheck(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	_, _, err := execute(t, p, "check")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStaleOutput))
	assert.False(t, p.Exists(".clangd"), "check never writes")

	_, _, err = execute(t, p)
	require.NoError(t, err)

	stdout, _, err := execute(t, p, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, MsgAllCurrent)

	p.WriteFile("tests/CMakeLists.txt", "edited by hand\n")
	stdout, _, err = execute(t, p, "check", "--diff")
	require.Error(t, err)
	assert.Contains(t, stdout, "-edited by hand")
}

func TestPathsCommand(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	stdout, _, err := execute(t, p, "paths")
	require.NoError(t, err)

	assert.Contains(t, stdout, "/home/tester")
	assert.Contains(t, stdout, "C:/Users/tester/AppData/Local")
	assert.Contains(t, stdout, "/proj (from flag)")
	assert.Contains(t, stdout, "/home/tester/scoop/apps/vcpkg/current/scripts/buildsystems/vcpkg.cmake")
	assert.False(t, p.Exists(".clangd"))
}

func TestConfigCommand(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	t.Run("toml", func(t *testing.T) {
		stdout, _, err := execute(t, p, "config")
		require.NoError(t, err)
		assert.Contains(t, stdout, "boost_version = '1.88.0'")
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := execute(t, p, "config", "--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, stdout, "boost_version: 1.88.0")
	})

	t.Run("write refuses to overwrite", func(t *testing.T) {
		_, _, err := execute(t, p, "config", "--write")
		require.NoError(t, err)
		assert.True(t, p.Exists(".prepenv.toml"))

		_, _, err = execute(t, p, "config", "--write")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestVersionCommand(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	stdout, _, err := execute(t, p, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "prepenv version")
}

func TestCompletionCommand(t *testing.T) {
	setupEnv(t)
	p := testutil.NewMemoryProject(t, testRoot)

	stdout, _, err := execute(t, p, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "prepenv")

	_, _, err = execute(t, p, "completion", "tcsh")
	assert.Error(t, err)
}

func TestDiskProject(t *testing.T) {
	setupEnv(t)
	p := testutil.NewDiskProject(t)

	_, _, err := execute(t, p)
	require.NoError(t, err)
	assert.Contains(t, p.ReadFile(".clangd"), "\"-I"+p.Root+"\",")
}

func TestFormatError(t *testing.T) {
	err := errors.New(errors.ErrDirMissing, "output directory /proj/tests does not exist").
		WithDetail("target", "cmakelists")

	out := FormatError(err)
	assert.Contains(t, out, "Error: [DIR_MISSING]")
	assert.Contains(t, out, "target: cmakelists")
}
