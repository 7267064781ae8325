package paths

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeOptions(env map[string]string) Options {
	return Options{
		Getenv:      func(k string) string { return env[k] },
		UserHomeDir: func() (string, error) { return "/home/u", nil },
		Getwd:       func() (string, error) { return "/work", nil },
		GitRoot:     func() (string, error) { return "", stderrors.New("not a git repository") },
		Executable:  func() (string, error) { return "/usr/local/bin/prepenv", nil },
		Stat:        func(string) (os.FileInfo, error) { return nil, os.ErrNotExist },
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(o *Options)
		env      map[string]string
		wantRoot string
		source   RootSource
	}{
		{
			name:     "explicit root",
			mutate:   func(o *Options) { o.Root = "/proj" },
			wantRoot: "/proj",
			source:   RootFromFlag,
		},
		{
			name:     "explicit root with tilde",
			mutate:   func(o *Options) { o.Root = "~/src/engine" },
			wantRoot: "/home/u/src/engine",
			source:   RootFromFlag,
		},
		{
			name:     "from PREPENV_ROOT",
			env:      map[string]string{EnvRoot: "/env/proj"},
			wantRoot: "/env/proj",
			source:   RootFromEnv,
		},
		{
			name:     "flag beats env",
			mutate:   func(o *Options) { o.Root = "/flag/proj" },
			env:      map[string]string{EnvRoot: "/env/proj"},
			wantRoot: "/flag/proj",
			source:   RootFromFlag,
		},
		{
			name:     "two levels above scripts dir",
			mutate:   func(o *Options) { o.ScriptsDir = "/proj/tests/scripts" },
			wantRoot: "/proj",
			source:   RootFromScriptDir,
		},
		{
			name: "beside the executable",
			mutate: func(o *Options) {
				o.Executable = func() (string, error) { return "/proj/tests/scripts/prepenv", nil }
				o.Stat = func(name string) (os.FileInfo, error) {
					if filepath.ToSlash(name) == "/proj/tests/scripts/config_files" {
						return os.Stat(os.TempDir())
					}
					return nil, os.ErrNotExist
				}
				o.GitRoot = func() (string, error) { return "/repo", nil }
			},
			wantRoot: "/proj",
			source:   RootFromExe,
		},
		{
			name: "installed executable is ignored",
			mutate: func(o *Options) {
				o.Executable = func() (string, error) { return "/home/u/go/bin/prepenv", nil }
				o.GitRoot = func() (string, error) { return "/repo", nil }
			},
			wantRoot: "/repo",
			source:   RootFromGit,
		},
		{
			name: "git root",
			mutate: func(o *Options) {
				o.GitRoot = func() (string, error) { return "/repo", nil }
			},
			wantRoot: "/repo",
			source:   RootFromGit,
		},
		{
			name:     "cwd fallback",
			wantRoot: "/work",
			source:   RootFromCwd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fakeOptions(tt.env)
			if tt.mutate != nil {
				tt.mutate(&opts)
			}

			env, err := Resolve(opts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantRoot, env.ProjectRoot)
			assert.Equal(t, tt.source, env.RootSource)
			assert.Equal(t, "/home/u", env.Home)
			assert.Equal(t, tt.source == RootFromCwd, env.UsedFallback())
		})
	}
}

func TestResolveHome(t *testing.T) {
	t.Run("falls back to HOME", func(t *testing.T) {
		opts := fakeOptions(map[string]string{EnvHome: "/fallback/home"})
		opts.UserHomeDir = func() (string, error) { return "", stderrors.New("no passwd entry") }
		opts.Root = "/proj"

		env, err := Resolve(opts)
		require.NoError(t, err)
		assert.Equal(t, "/fallback/home", env.Home)
	})

	t.Run("unresolvable home is fatal", func(t *testing.T) {
		opts := fakeOptions(nil)
		opts.UserHomeDir = func() (string, error) { return "", stderrors.New("no passwd entry") }
		opts.Root = "/proj"

		_, err := Resolve(opts)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrHomeUnresolved))
	})

	t.Run("empty home is fatal", func(t *testing.T) {
		opts := fakeOptions(nil)
		opts.UserHomeDir = func() (string, error) { return "", nil }
		opts.Root = "/proj"

		_, err := Resolve(opts)
		assert.True(t, errors.IsErrorCode(err, errors.ErrHomeUnresolved))
	})
}

func TestResolveLocalAppData(t *testing.T) {
	opts := fakeOptions(map[string]string{EnvLocalAppData: `C:\Users\u\AppData\Local`})
	opts.Root = "/proj"

	env, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "C:/Users/u/AppData/Local", env.LocalAppData)

	opts = fakeOptions(nil)
	opts.Root = "/proj"
	env, err = Resolve(opts)
	require.NoError(t, err)
	assert.Empty(t, env.LocalAppData, "missing LOCALAPPDATA is tolerated")
}

func TestResolveNormalizesHome(t *testing.T) {
	opts := fakeOptions(nil)
	opts.UserHomeDir = func() (string, error) { return `C:\Users\u`, nil }
	opts.Root = "/proj"

	env, err := Resolve(opts)
	require.NoError(t, err)
	assert.Equal(t, "C:/Users/u", env.Home)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "C:/Users/u/scoop", Normalize(`C:\Users\u\scoop`))
	assert.Equal(t, "/home/u", Normalize("/home/u"))
	assert.Equal(t, "", Normalize(""))
}

func TestProjectRootFromScriptDir(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/proj/tests/scripts", "/proj"},
		{"/proj/tests/scripts/", "/proj"},
		{`C:\src\FanImeEngine\tests\scripts`, "C:/src/FanImeEngine"},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectRootFromScriptDir(tt.dir))
		})
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"just tilde", "~", "/home/u"},
		{"tilde with path", "~/engine", filepath.Join("/home/u", "engine")},
		{"tilde other user", "~other/path", "~other/path"},
		{"no tilde", "/absolute/path", "/absolute/path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHome(tt.input, "/home/u"))
		})
	}
}
