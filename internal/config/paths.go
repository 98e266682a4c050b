// ABOUTME: Standard filesystem paths for pkgkit configuration
// ABOUTME: Resolves ~/.pkgkit/ for global and <root>/.pkgkit/ for workspace paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".pkgkit"
	projectDirName = ".pkgkit"
	configFileName = "config.yaml"
)

// GlobalDir returns the user-global config directory (~/.pkgkit/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the workspace-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), configFileName)
}

// ProjectConfigFile returns the path to the workspace config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), configFileName)
}
