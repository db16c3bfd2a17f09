// Package version exposes build metadata stamped in via ldflags:
//
//	-X github.com/arama-cloud/arama/internal/version.Version=v1.2.3
package version

//nolint:revive // Assigned by the linker, not at runtime.
var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// Commit is the short git revision the binary was built from.
	Commit = "unknown"
)
