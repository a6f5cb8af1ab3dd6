package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time with something like:
// go build -ldflags "-X github.com/vsariola/gainknob/version.Version=v1.2.3"

var Version string

var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision, dirty string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision == "" {
		return ""
	}
	return revision + dirty
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

// Code packs a "vMAJOR.MINOR.PATCH" version into the integer hosts show for
// plugins, e.g. v1.2.3 becomes 10203. Anything that does not parse gives
// fallback.
func Code(v string, fallback int32) int32 {
	var major, minor, patch int32
	if _, err := fmt.Sscanf(v, "v%d.%d.%d", &major, &minor, &patch); err != nil {
		return fallback
	}
	if major < 0 || minor < 0 || minor > 99 || patch < 0 || patch > 99 {
		return fallback
	}
	return major*10000 + minor*100 + patch
}
