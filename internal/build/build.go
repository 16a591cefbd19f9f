// Package build holds build-time information about the kiln binary.
package build

// Version is reported by `kiln version`.
// Release builds set it with -ldflags "-X go.trai.ch/kiln/internal/build.Version=<tag>".
var Version = "dev"
