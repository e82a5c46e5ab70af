// Package version resolves the build's identity string, used in the upstream
// User-Agent header and in startup logging. The commit hash comes from
// -ldflags when set (container builds without .git), falling back to the VCS
// stamp in debug.BuildInfo, then to "dev".
package version

import "runtime/debug"

// AppName is the application name used in version strings and user agents.
const AppName = "lucide"

// gitCommitOverride is injected at build time:
//
//	go build -ldflags "-X github.com/lucide-ai/lucide/pkg/version.gitCommitOverride=$(git rev-parse HEAD)"
var gitCommitOverride string

// GitCommit is the short commit hash identifying this build, "dev" when no
// build metadata is available (go test, non-git checkouts).
var GitCommit = resolveCommit()

// Full returns "lucide/<commit>".
func Full() string {
	return AppName + "/" + GitCommit
}

func resolveCommit() string {
	if gitCommitOverride != "" {
		return shorten(gitCommitOverride)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return shorten(s.Value)
			}
		}
	}
	return "dev"
}

func shorten(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
