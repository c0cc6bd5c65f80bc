// Package version derives a version string from the build metadata
// stamped by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

func FromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	var revision, ts, dirty string

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		case "vcs.modified":
			if info.Settings[i].Value == "true" {
				dirty = " (modified)"
			}
		default:
			continue
		}
	}

	if revision == "" {
		return "unknown"
	}

	if len(revision) > 12 {
		revision = revision[:12]
	}

	if ts == "" {
		return revision + dirty
	}

	return fmt.Sprintf("%s built %s%s", revision, ts, dirty)
}
