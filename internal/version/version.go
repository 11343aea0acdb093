// Package version holds build-time metadata injected via ldflags.
package version

// Set at build time:
//
//	-X 'github.com/janekbaraniewski/ratelimits/internal/version.Version=...'
//	-X 'github.com/janekbaraniewski/ratelimits/internal/version.CommitHash=...'
//	-X 'github.com/janekbaraniewski/ratelimits/internal/version.BuildDate=...'
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

func String() string {
	return Version + " (" + CommitHash + ") built " + BuildDate
}
