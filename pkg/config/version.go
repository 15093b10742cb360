package config

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// RawVersion is set via build flags.
var RawVersion = "dev"

// getVersion combines RawVersion with the VCS revision the binary was
// built from, e.g. v1.0.0-a1b2c3d+dirty.
func getVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return formatVersion(RawVersion, "", false)
	}

	var (
		revision string
		dirty    bool
	)
	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs.revision":
			revision = bs.Value
		case "vcs.modified":
			// an unparsable flag counts as clean
			dirty, _ = strconv.ParseBool(bs.Value)
		}
	}

	return formatVersion(RawVersion, revision, dirty)
}

func formatVersion(raw string, revision string, dirty bool) string {
	if len(revision) > 7 {
		revision = revision[:7]
	}

	if dirty {
		revision += "+dirty"
	}

	if revision == "" {
		return "v" + raw
	}

	return fmt.Sprintf("v%s-%s", raw, revision)
}
