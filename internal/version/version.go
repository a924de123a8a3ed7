// Package version exposes the application version string.
package version

// Version is the application version, overridable at build time with
// -ldflags "-X agentstudio/internal/version.Version=...".
var Version = "0.1.0"
