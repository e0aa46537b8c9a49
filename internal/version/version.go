// Package version holds the build version, set with
// -ldflags "-X mfdb/internal/version.Version=v1.2.3".
package version

// Version is reported by mfdb --version.
var Version = "dev"
