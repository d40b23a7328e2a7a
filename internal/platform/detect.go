package platform

import (
	"os"

	"github.com/promptly-sh/promptly/internal/paths"
)

// InstallStatus indicates the installation state of a host platform.
type InstallStatus string

const (
	// StatusInstalled indicates the platform's global config directory exists.
	StatusInstalled InstallStatus = "installed"

	// StatusNotInstalled indicates the platform's global config directory
	// does not exist.
	StatusNotInstalled InstallStatus = "not_installed"
)

// DetectionResult describes a probed platform.
type DetectionResult struct {
	// Name is the platform identifier.
	Name string

	// GlobalConfig is the global configuration directory. Always set
	// for valid platforms, even when the directory does not exist.
	GlobalConfig string

	// Instructions is the path of the platform's instruction file.
	Instructions string

	// Status is the installation state.
	Status InstallStatus
}

// DetectPlatform probes one platform. Returns nil for unknown names.
func DetectPlatform(name string) *DetectionResult {
	if !paths.ValidPlatform(name) {
		return nil
	}

	globalConfig := paths.GlobalConfigDir(name)

	status := StatusNotInstalled
	if dirExists(globalConfig) {
		status = StatusInstalled
	}

	return &DetectionResult{
		Name:         name,
		GlobalConfig: globalConfig,
		Instructions: paths.InstructionsPath(name),
		Status:       status,
	}
}

// DetectAll probes every known platform in deterministic order.
func DetectAll() []*DetectionResult {
	names := paths.Platforms()
	results := make([]*DetectionResult, 0, len(names))
	for _, name := range names {
		if r := DetectPlatform(name); r != nil {
			results = append(results, r)
		}
	}
	return results
}

// DetectInstalled returns only platforms whose config directory exists.
func DetectInstalled() []*DetectionResult {
	all := DetectAll()
	installed := make([]*DetectionResult, 0, len(all))
	for _, r := range all {
		if r.Status == StatusInstalled {
			installed = append(installed, r)
		}
	}
	return installed
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
