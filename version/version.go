package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/fretwork/fretwork/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision the binary was built from, with a -dirty
// suffix for modified trees, or "" if the build carries no VCS information.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return hashOf(info.Settings)
}()

func hashOf(settings []debug.BuildSetting) string {
	revision, modified := "", false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

// Info is the one-line description printed by `fretwork version`.
func Info() string {
	return fmt.Sprintf("fretwork %s (%s %s/%s)", VersionOrHash, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
