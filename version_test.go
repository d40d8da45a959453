package i18nsync

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersion(t *testing.T) {
	oldCommit, oldRead := GitCommit, readBuildInfo
	defer func() { GitCommit, readBuildInfo = oldCommit, oldRead }()

	stamped := func(rev string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: rev}}}, true
		}
	}

	tests := []struct {
		name   string
		commit string
		read   func() (*debug.BuildInfo, bool)
		want   string
	}{
		{"nothing known", "", func() (*debug.BuildInfo, bool) { return nil, false }, Version},
		{"ldflags commit", "0123456789abcdef", stamped("ffffffffffff"), Version + "+0123456"},
		{"toolchain revision", "", stamped("fedcba9876543210"), Version + "+fedcba9"},
		{"short commit", "abc", nil, Version + "+abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			GitCommit, readBuildInfo = tt.commit, tt.read
			assert.Equal(t, tt.want, FullVersion())
		})
	}
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "i18nsync/"+Version, UserAgent())
}
