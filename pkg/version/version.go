// Package version exposes the pathscribe build version.
package version

// Version is the pathscribe version, overridden at build time via
// -ldflags "-X github.com/rshade/pathscribe/pkg/version.Version=v1.2.3".
var Version = "dev" //nolint:gochecknoglobals // Set by the linker at build time

// GetVersion returns the current pathscribe version string.
func GetVersion() string {
	return Version
}
