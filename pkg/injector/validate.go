package injector

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// formatWarnings checks that generated content still parses for its
// consumer. Unknown formats are not checked.
func formatWarnings(output string, content []byte) []string {
	base := filepath.Base(output)
	switch {
	case strings.EqualFold(filepath.Ext(base), ".json"):
		if !json.Valid(content) {
			return []string{"generated file is not valid JSON"}
		}
	case base == ".clangd" || isYAML(base):
		var doc yaml.Node
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return []string{"generated file is not valid YAML: " + err.Error()}
		}
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
