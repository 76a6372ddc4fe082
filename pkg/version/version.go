// Package version carries build metadata injected at link time.
package version

// Populated via -ldflags at release build time; the zero values identify a
// source build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
