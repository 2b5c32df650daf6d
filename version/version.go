// Package version carries build metadata, filled in via -ldflags.
package version

import "runtime"

var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
	GoVersion = runtime.Version()
	OsArch    = runtime.GOOS + "/" + runtime.GOARCH
)
