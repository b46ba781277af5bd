// Package meta holds build-time metadata for Glance.
package meta

// Version is the Glance version string, overridden at build time via
// -ldflags "-X github.com/trjordan/glance/internal/meta.Version=...".
var Version = "v0.0.0-unknown"
