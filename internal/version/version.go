package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/dtovl/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dtovl/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/dtovl/internal/version.Date={{.Date}}
)

// String returns the one-line version description.
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
