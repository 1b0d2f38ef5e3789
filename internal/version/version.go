package version

import (
	"fmt"
	"runtime"
)

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/mdxaml/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/mdxaml/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/mdxaml/internal/version.Date={{.Date}}
)

// Info returns the multi-line text printed by mdxaml version
func Info() string {
	return fmt.Sprintf("mdxaml version %s\nCommit: %s\nBuilt:  %s\nGo:     %s\n",
		Version, Commit, Date, runtime.Version())
}
