// Package version reports build metadata, set with ldflags at build time:
//
//	-X github.com/mutablelogic/go-assistant/pkg/version.GitTag=...
//	-X github.com/mutablelogic/go-assistant/pkg/version.GitBranch=...
package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

const (
	// Reported when no version information is available
	Dev = "dev"

	shortHash = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or abbreviated revision the binary was
// built from
func Version() string {
	if GitTag != "" {
		return GitTag
	}
	if GitBranch != "" {
		return GitBranch
	}
	if hash := setting("vcs.revision"); hash != "" {
		if len(hash) > shortHash {
			hash = hash[:shortHash]
		}
		return hash
	}
	return Dev
}

// Metadata returns the build metadata for the named executable
func Metadata(execName string) map[string]string {
	metadata := map[string]string{
		"name":     execName,
		"version":  Version(),
		"compiler": runtime.Version(),
		"platform": runtime.GOOS + "/" + runtime.GOARCH,
	}
	if GitTag != "" {
		metadata["tag"] = GitTag
	}
	if GitBranch != "" {
		metadata["branch"] = GitBranch
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Path != "" {
		metadata["source"] = info.Main.Path
	}
	for key, name := range map[string]string{
		"vcs.revision": "hash",
		"vcs.time":     "build_time",
	} {
		if value := setting(key); value != "" {
			metadata[name] = value
		}
	}
	if setting("vcs.modified") == "true" {
		metadata["modified"] = "true"
	}
	return metadata
}

// JSON returns the build metadata as indented JSON
func JSON(execName string) []byte {
	data, err := json.MarshalIndent(Metadata(execName), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key {
				return s.Value
			}
		}
	}
	return ""
}
