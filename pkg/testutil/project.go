package testutil

import (
	"path/filepath"
	"testing"

	"github.com/fanimeengine/prepenv/pkg/filesystem"
	"github.com/fanimeengine/prepenv/pkg/types"
)

// Relative locations used by the default configuration
const (
	TemplatesDir = "tests/scripts/config_files"
	TestsDir     = "tests"
)

// Project is a FanImeEngine-shaped tree: templates under
// tests/scripts/config_files and an existing tests/ directory.
type Project struct {
	Root string
	FS   types.FS
	t    *testing.T
}

// NewMemoryProject builds the project at root on an in-memory filesystem.
func NewMemoryProject(t *testing.T, root string) *Project {
	t.Helper()
	p := &Project{Root: root, FS: filesystem.NewMemory(), t: t}
	p.seed()
	return p
}

// NewDiskProject builds the project in a fresh temp directory.
func NewDiskProject(t *testing.T) *Project {
	t.Helper()
	p := &Project{Root: filepath.ToSlash(t.TempDir()), FS: filesystem.NewOS(), t: t}
	p.seed()
	return p
}

func (p *Project) seed() {
	p.t.Helper()
	p.MkdirAll(TemplatesDir)
	p.WriteFile(filepath.Join(TemplatesDir, ".clangd"), ClangdTemplate)
	p.WriteFile(filepath.Join(TemplatesDir, "CMakeLists.txt"), CMakeListsTemplate)
	p.WriteFile(filepath.Join(TemplatesDir, "CMakePresets.json"), CMakePresetsTemplate)
}

// Path joins rel onto the project root.
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, rel)
}

// MkdirAll creates rel under the root.
func (p *Project) MkdirAll(rel string) {
	p.t.Helper()
	if err := p.FS.MkdirAll(p.Path(rel), 0755); err != nil {
		p.t.Fatalf("mkdir %s: %v", rel, err)
	}
}

// WriteFile writes content to rel under the root.
func (p *Project) WriteFile(rel, content string) {
	p.t.Helper()
	if err := p.FS.WriteFile(p.Path(rel), []byte(content), 0644); err != nil {
		p.t.Fatalf("write %s: %v", rel, err)
	}
}

// ReadFile returns the content of rel under the root.
func (p *Project) ReadFile(rel string) string {
	p.t.Helper()
	data, err := p.FS.ReadFile(p.Path(rel))
	if err != nil {
		p.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists under the root.
func (p *Project) Exists(rel string) bool {
	_, err := p.FS.Stat(p.Path(rel))
	return err == nil
}
