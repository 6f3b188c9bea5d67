// Package version provides the nxgraph tool version.
package version

// Version is the nxgraph tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/nx-tools/nxgraph/pkg/version.Version=1.2.0"
var Version = "dev"
