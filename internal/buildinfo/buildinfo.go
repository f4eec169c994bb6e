// Package buildinfo exposes version data stamped at link time.
package buildinfo

import (
	"fmt"
	"io"
)

// Set via -ldflags "-X .../internal/buildinfo.buildVersion=... ".
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
