package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags "-X github.com/mutablelogic/go-latex/pkg/version.GitTag=..."
var (
	GitTag    string
	GitBranch string
)

const (
	// Product name sent in the User-Agent header
	Product = "go-latex"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short revision the binary was built from
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return s.Value[:12]
			}
		}
	}
	return "dev"
}

// UserAgent returns the value of the User-Agent header for render requests
func UserAgent() string {
	return Product + "/" + Version()
}

// JSON returns build metadata for the named executable
func JSON(execName string) []byte {
	metadata := map[string]string{
		"name":       execName,
		"version":    Version(),
		"compiler":   runtime.Version(),
		"platform":   runtime.GOOS + "/" + runtime.GOARCH,
		"user_agent": UserAgent(),
	}
	if GitTag != "" {
		metadata["tag"] = GitTag
	}
	if GitBranch != "" {
		metadata["branch"] = GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path != "" {
			metadata["source"] = info.Main.Path
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				metadata["hash"] = s.Value
			case "vcs.time":
				metadata["build_time"] = s.Value
			}
		}
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}
