// Package templates describes the three generated build files: where each
// template lives, where its output goes, and which lines get replaced.
package templates

import (
	"fmt"
	"path/filepath"

	"github.com/fanimeengine/prepenv/pkg/config"
	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/layout"
	"github.com/fanimeengine/prepenv/pkg/splice"
)

// Target names
const (
	Clangd       = "clangd"
	CMakeLists   = "cmakelists"
	CMakePresets = "cmakepresets"
)

// Target is one template/output pair ready for the injector.
type Target struct {
	Name     string
	Template string
	Output   string
	Edits    []splice.Edit
}

// region is a replaced block: its fixed index range and the marker name
// used for it in marker mode.
type region struct {
	marker string
	start  int
	end    int
	lines  []string
}

// regions returns the replaced blocks for a known target.
func regions(name string, l layout.Layout) ([]region, bool) {
	switch name {
	case Clangd:
		return []region{{
			marker: "include-paths",
			start:  6,
			end:    10,
			lines:  ClangdIncludeLines(l),
		}}, true
	case CMakeLists:
		return []region{{
			marker: "boost-root",
			start:  18,
			end:    19,
			lines:  []string{BoostRootLine(l)},
		}}, true
	case CMakePresets:
		return []region{
			{marker: "vcpkg-root", start: 8, end: 9, lines: []string{VcpkgRootLine(l)}},
			{marker: "vcpkg-toolchain", start: 11, end: 12, lines: []string{ToolchainLine(l)}},
		}, true
	}
	return nil, false
}

// ClangdIncludeLines are the -I flags spliced into the .clangd Add list.
func ClangdIncludeLines(l layout.Layout) []string {
	return []string{
		fmt.Sprintf("      \"-I%s\",\n", l.ProjectRoot),
		fmt.Sprintf("      \"-I%s\",\n", l.VcpkgInclude),
		fmt.Sprintf("      \"-I%s\",\n", l.UtfcppSource),
		fmt.Sprintf("      \"-I%s\",\n", l.BoostVersioned),
	}
}

// BoostRootLine sets Boost_ROOT in the test CMakeLists.txt.
func BoostRootLine(l layout.Layout) string {
	return fmt.Sprintf("set(Boost_ROOT \"%s\")\n", l.BoostRoot)
}

// VcpkgRootLine sets the VCPKG_ROOT preset variable. The trailing slash is
// part of the value vcpkg expects.
func VcpkgRootLine(l layout.Layout) string {
	return fmt.Sprintf("        \"VCPKG_ROOT\": \"%s/\"\n", l.VcpkgRoot)
}

// ToolchainLine sets CMAKE_TOOLCHAIN_FILE in the preset.
func ToolchainLine(l layout.Layout) string {
	return fmt.Sprintf("        \"CMAKE_TOOLCHAIN_FILE\": \"%s\",\n", l.VcpkgToolchain)
}

// Build returns the targets listed in cfg.Order, in that order.
func Build(l layout.Layout, cfg config.Templates) ([]Target, error) {
	targets := make([]Target, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		tc, ok := cfg.Targets[name]
		if !ok {
			return nil, errors.Newf(errors.ErrTargetNotFound, "target %q is not configured", name)
		}
		regs, ok := regions(name, l)
		if !ok {
			return nil, errors.Newf(errors.ErrTargetNotFound, "no edits known for target %q", name).
				WithDetail("known", Names())
		}

		edits := make([]splice.Edit, 0, len(regs))
		for _, r := range regs {
			if tc.Mode == config.ModeMarker {
				edits = append(edits, splice.MarkerEdit(r.marker, r.lines...))
			} else {
				edits = append(edits, splice.ReplaceRange(r.start, r.end, r.lines...))
			}
		}

		targets = append(targets, Target{
			Name:     name,
			Template: resolve(l.ProjectRoot, cfg.Dir, tc.Template),
			Output:   resolve(l.ProjectRoot, "", tc.Output),
			Edits:    edits,
		})
	}
	return targets, nil
}

// Select keeps only the named targets, preserving their order.
func Select(targets []Target, names []string) ([]Target, error) {
	if len(names) == 0 {
		return targets, nil
	}
	byName := make(map[string]Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := byName[n]; !ok {
			return nil, errors.Newf(errors.ErrTargetNotFound, "unknown target %q", n)
		}
		wanted[n] = true
	}

	out := make([]Target, 0, len(names))
	for _, t := range targets {
		if wanted[t.Name] {
			out = append(out, t)
		}
	}
	return out, nil
}

// Names lists the targets this package knows how to splice.
func Names() []string {
	return []string{Clangd, CMakeLists, CMakePresets}
}

func resolve(root, dir, name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.FromSlash(root), filepath.FromSlash(dir), name)
}
