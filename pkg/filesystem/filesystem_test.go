package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := NewOS()
	require.NotNil(t, fsys)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "CMakeLists.txt")
	content := []byte("project(x)\n")

	require.NoError(t, fsys.WriteFile(testFile, content, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size())

	got, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, fsys.Remove(testFile))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestOSWriteFileMissingParent(t *testing.T) {
	fsys := NewOS()
	err := fsys.WriteFile(filepath.Join(t.TempDir(), "absent", "out.txt"), []byte("x"), 0644)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFS(t *testing.T) {
	fsys := NewMemory()

	t.Run("write requires parent directory", func(t *testing.T) {
		err := fsys.WriteFile("/proj/tests/CMakePresets.json", []byte("{}"), 0644)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("write and read back", func(t *testing.T) {
		require.NoError(t, fsys.MkdirAll("/proj/tests", 0755))
		require.NoError(t, fsys.WriteFile("/proj/tests/CMakePresets.json", []byte("{}"), 0644))

		got, err := fsys.ReadFile("/proj/tests/CMakePresets.json")
		require.NoError(t, err)
		assert.Equal(t, "{}", string(got))
	})

	t.Run("reading a directory fails", func(t *testing.T) {
		_, err := fsys.ReadFile("/proj/tests")
		assert.Error(t, err)
	})

	t.Run("parent that is a file is rejected", func(t *testing.T) {
		err := fsys.WriteFile("/proj/tests/CMakePresets.json/inner", []byte("x"), 0644)
		assert.Error(t, err)
	})
}
