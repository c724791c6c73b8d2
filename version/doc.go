// Package version reports build information for securekit binaries.
//
// Version, commit, and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/securekit/version.Version=1.0.0"
package version
