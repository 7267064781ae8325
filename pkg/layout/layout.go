// Package layout computes the machine-specific paths written into the
// generated build configuration. Compute is pure: it only joins strings.
package layout

import (
	"path"
	"strings"

	"github.com/fanimeengine/prepenv/pkg/config"
	"github.com/fanimeengine/prepenv/pkg/paths"
)

// Layout is the full set of computed paths, all with forward slashes.
type Layout struct {
	// Include directories for the editor language server
	ProjectRoot    string
	VcpkgInclude   string
	UtfcppSource   string
	BoostVersioned string

	// Package-manager roots, via the scoop "current" alias
	BoostRoot      string
	VcpkgRoot      string
	VcpkgToolchain string
}

// Compute derives the layout from the resolved environment.
func Compute(env paths.Environment, cfg config.Layout) Layout {
	root := paths.Normalize(env.ProjectRoot)
	apps := join(paths.Normalize(env.Home), cfg.ScoopApps)

	vcpkgRoot := join(apps, "vcpkg", "current")

	return Layout{
		ProjectRoot:    root,
		VcpkgInclude:   join(root, cfg.VcpkgInstalled, cfg.VcpkgTriplet, "include"),
		UtfcppSource:   join(root, cfg.UtfcppSource),
		BoostVersioned: join(apps, "boost", cfg.BoostVersion),
		BoostRoot:      join(apps, "boost", "current"),
		VcpkgRoot:      vcpkgRoot,
		VcpkgToolchain: join(vcpkgRoot, "scripts", "buildsystems", "vcpkg.cmake"),
	}
}

// join is path.Join over normalized elements, so Windows inputs come out
// with forward slashes too. A leading "//" (UNC share) is kept.
func join(elem ...string) string {
	for i := range elem {
		elem[i] = paths.Normalize(elem[i])
	}
	joined := path.Join(elem...)
	if len(elem) > 0 && strings.HasPrefix(elem[0], "//") && !strings.HasPrefix(joined, "//") {
		joined = "/" + joined
	}
	return joined
}

// Entries lists the layout as name/value pairs in display order.
func (l Layout) Entries() [][2]string {
	return [][2]string{
		{"project_root", l.ProjectRoot},
		{"vcpkg_include", l.VcpkgInclude},
		{"utfcpp_source", l.UtfcppSource},
		{"boost_versioned", l.BoostVersioned},
		{"boost_root", l.BoostRoot},
		{"vcpkg_root", l.VcpkgRoot},
		{"vcpkg_toolchain", l.VcpkgToolchain},
	}
}
