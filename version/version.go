// Package version exposes build metadata, injected at link time with -X or recovered from the build info.
package version

import (
	"os"
	"path/filepath"
	"runtime/debug"
)

//nolint:gochecknoglobals // overridden through -ldflags "-X"
var (
	name    = ""
	version = ""
	commit  = ""
)

const shortCommit = 12

// Name returns the binary name.
func Name() string {
	if name != "" {
		return name
	}

	return filepath.Base(os.Args[0])
}

// Version returns the release version, or "dev" for untagged builds.
func Version() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Commit returns the vcs revision the binary was built from.
func Commit() string {
	if commit != "" {
		return commit
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			if len(setting.Value) > shortCommit {
				return setting.Value[:shortCommit]
			}

			return setting.Value
		}
	}

	return "unknown"
}
