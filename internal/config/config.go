// ABOUTME: Settings loading with global + workspace config merge
// ABOUTME: YAML configuration via gopkg.in/yaml.v3; workspace values win

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvSavePrefix overrides the merged save prefix when set, even to "".
const EnvSavePrefix = "PKGKIT_SAVE_PREFIX"

const defaultSavePrefix = "^"

var defaultPackages = []string{"packages/*"}

// Settings holds the merged configuration.
type Settings struct {
	// SavePrefix is prepended to versions written into dependency maps.
	// nil means "^"; an explicit "" pins exact versions.
	SavePrefix     *string  `yaml:"savePrefix,omitempty"`
	AllowUpperCase bool     `yaml:"allowUpperCase,omitempty"`
	Packages       []string `yaml:"packages,omitempty"`
	// Indent for newly written manifests: a number of spaces or "tab".
	Indent    string `yaml:"indent,omitempty"`
	SortKeys  bool   `yaml:"sortKeys,omitempty"`
	Normalize *bool  `yaml:"normalize,omitempty"`
}

// Prefix returns the effective save prefix.
func (s *Settings) Prefix() string {
	if s.SavePrefix == nil {
		return defaultSavePrefix
	}
	return *s.SavePrefix
}

// PackageGlobs returns the workspace package patterns.
func (s *Settings) PackageGlobs() []string {
	if len(s.Packages) == 0 {
		return defaultPackages
	}
	return s.Packages
}

// Load reads and merges global and workspace settings.
// Workspace settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if prefix, ok := os.LookupEnv(EnvSavePrefix); ok {
		merged.SavePrefix = &prefix
	}
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Set project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.SavePrefix != nil {
		result.SavePrefix = project.SavePrefix
	}
	if project.AllowUpperCase {
		result.AllowUpperCase = true
	}
	if len(project.Packages) > 0 {
		result.Packages = project.Packages
	}
	if project.Indent != "" {
		result.Indent = project.Indent
	}
	if project.SortKeys {
		result.SortKeys = true
	}
	if project.Normalize != nil {
		result.Normalize = project.Normalize
	}

	return &result
}
