package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// TokenProtocol is the protocol version stamped into access tokens.
const TokenProtocol = "1.1.0"

// Info describes the running binary.
type Info struct {
	Version       string    `json:"version"`
	GitCommit     string    `json:"git_commit,omitempty"`
	BuildTime     string    `json:"build_time,omitempty"`
	GoVersion     string    `json:"go_version"`
	TokenProtocol string    `json:"token_protocol"`
	BuildDate     time.Time `json:"build_date,omitempty"`
	IsRelease     bool      `json:"is_release"`
	IsDirty       bool      `json:"is_dirty"`
}

// Get returns build information, filling gaps from the embedded VCS
// settings when ldflags were not provided.
func Get() *Info {
	info := &Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		TokenProtocol: TokenProtocol,
		IsRelease:     Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		applyBuildSettings(info, bi.Settings)
	}
	return info
}

func applyBuildSettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
					info.BuildTime = s.Value
				}
			}
		}
	}
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Short returns "version[-commit][-dirty]".
func (i *Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

// String returns a one-line description for the version command.
func (i *Info) String() string {
	s := fmt.Sprintf("securekit %s (token protocol %s", i.Short(), i.TokenProtocol)
	if i.GoVersion != "" {
		s += ", " + i.GoVersion
	}
	if !i.BuildDate.IsZero() {
		s += ", built " + i.BuildDate.UTC().Format(time.RFC3339)
	}
	return s + ")"
}
