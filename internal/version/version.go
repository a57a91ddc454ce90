package version

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X calib/internal/version.Version=v1.2.0 -X calib/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version = "dev"
	Commit  = "unknown"
)
