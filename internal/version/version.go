package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/fanimeengine/prepenv/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/fanimeengine/prepenv/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/fanimeengine/prepenv/internal/version.Date={{.Date}}
)
