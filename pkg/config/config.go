package config

import (
	"github.com/fanimeengine/prepenv/pkg/errors"
)

// Splice modes
const (
	ModeIndex  = "index"
	ModeMarker = "marker"
)

// Config is the effective prepenv configuration
type Config struct {
	Layout    Layout    `koanf:"layout" toml:"layout" yaml:"layout"`
	Templates Templates `koanf:"templates" toml:"templates" yaml:"templates"`
}

// Layout holds the pieces the computed paths are built from
type Layout struct {
	ScoopApps      string `koanf:"scoop_apps" toml:"scoop_apps" yaml:"scoop_apps"`
	BoostVersion   string `koanf:"boost_version" toml:"boost_version" yaml:"boost_version"`
	VcpkgTriplet   string `koanf:"vcpkg_triplet" toml:"vcpkg_triplet" yaml:"vcpkg_triplet"`
	VcpkgInstalled string `koanf:"vcpkg_installed" toml:"vcpkg_installed" yaml:"vcpkg_installed"`
	UtfcppSource   string `koanf:"utfcpp_source" toml:"utfcpp_source" yaml:"utfcpp_source"`
}

// Templates locates the template files and their outputs
type Templates struct {
	Dir     string            `koanf:"dir" toml:"dir" yaml:"dir"`
	Order   []string          `koanf:"order" toml:"order" yaml:"order"`
	Targets map[string]Target `koanf:"targets" toml:"targets" yaml:"targets"`
}

// Target is one template/output pair. Template is relative to
// Templates.Dir, Output to the project root.
type Target struct {
	Template string `koanf:"template" toml:"template" yaml:"template"`
	Output   string `koanf:"output" toml:"output" yaml:"output"`
	Mode     string `koanf:"mode" toml:"mode" yaml:"mode"`
}

// Validate checks that every ordered target is fully described
func (c *Config) Validate() error {
	if len(c.Templates.Order) == 0 {
		return errors.New(errors.ErrConfigValid, "templates.order is empty")
	}
	seen := make(map[string]bool, len(c.Templates.Order))
	for _, name := range c.Templates.Order {
		if seen[name] {
			return errors.Newf(errors.ErrConfigValid, "target %q listed twice in templates.order", name)
		}
		seen[name] = true

		target, ok := c.Templates.Targets[name]
		if !ok {
			return errors.Newf(errors.ErrConfigValid, "target %q has no templates.targets entry", name)
		}
		if target.Template == "" || target.Output == "" {
			return errors.Newf(errors.ErrConfigValid, "target %q needs both template and output", name).
				WithDetail("target", name)
		}
		switch target.Mode {
		case "", ModeIndex, ModeMarker:
		default:
			return errors.Newf(errors.ErrConfigValid, "target %q has unknown mode %q", name, target.Mode).
				WithDetail("target", name)
		}
	}
	return nil
}
