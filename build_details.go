package swaggerguard

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X github.com/erraggy/swaggerguard.version=..." for
// release builds.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the release version, or "dev" for source builds.
func Version() string { return version }

// Commit returns the git commit of the build, or "unknown".
func Commit() string { return commit }

// BuildTime returns the RFC3339 build timestamp, or "unknown".
func BuildTime() string { return buildTime }

// GoVersion returns the Go runtime version.
func GoVersion() string { return runtime.Version() }

// BuildInfo renders the build metadata one field per line, as printed by
// `swaggerguard version`.
func BuildInfo() string {
	var b strings.Builder
	for _, kv := range [][2]string{
		{"Version", Version()},
		{"Commit", Commit()},
		{"Build Time", BuildTime()},
		{"Go Version", GoVersion()},
	} {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", kv[0], kv[1])
	}
	return b.String()
}
