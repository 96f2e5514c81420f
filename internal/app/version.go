package app

import "fmt"

// Name is the binary name, also used in the default User-Agent.
const Name = "note-discord-share"

// Build metadata, overridden with -ldflags "-X".
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent is the default User-Agent sent with webhook requests.
func UserAgent() string {
	return Name + "/" + Version
}

// VersionInfo 版本信息，verbose 时附带提交与构建时间
func VersionInfo(verbose bool) string {
	if !verbose {
		return Version
	}
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, GitCommit, BuildDate)
}
