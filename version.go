package i18nsync

import "runtime/debug"

// Name is the application name.
const Name = "i18nsync"

// Version, GitCommit and BuildDate are set at build time:
//
//	go build -ldflags "-X github.com/ZaguanLabs/i18nsync.Version=1.0.0 -X github.com/ZaguanLabs/i18nsync.GitCommit=$(git rev-parse HEAD)"
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// commit returns GitCommit, or the VCS revision stamped by the Go toolchain
// when it was not set.
func commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// FullVersion returns the version with a short commit suffix when known,
// e.g. "0.1.0+1a2b3c4".
func FullVersion() string {
	c := commit()
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "" {
		return Version
	}
	return Version + "+" + c
}

// UserAgent returns the User-Agent sent to translation services.
func UserAgent() string {
	return Name + "/" + Version
}
