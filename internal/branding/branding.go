// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. A fork that targets a different engine repository
// only needs to edit that file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	EngineRepoURL string `yaml:"engine_repo_url"`
	EngineDirName string `yaml:"engine_dir_name"`
	TempDirName   string `yaml:"temp_dir_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "bladegen",
			DisplayName:   "Blade Project Generator",
			Description:   "Scaffold new Blade Engine game projects",
			HomeDir:       ".bladegen",
			EnvPrefix:     "BLADEGEN",
			EngineRepoURL: "https://github.com/BladeEngine/BladeEngine.git",
			EngineDirName: "BladeEngine",
			TempDirName:   ".bladegen-engine-tmp",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "bladegen").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".bladegen").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "BLADEGEN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EngineRepoURL returns the default git URL of the engine repository.
func EngineRepoURL() string { load(); return defaults.EngineRepoURL }

// EngineDirName returns the directory name the engine is vendored under.
func EngineDirName() string { load(); return defaults.EngineDirName }

// TempDirName returns the default name of the temporary engine clone.
func TempDirName() string { load(); return defaults.TempDirName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("temp_dir") → "BLADEGEN_TEMP_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
