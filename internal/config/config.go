package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bladeengine/bladegen/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised configuration keys.
const (
	KeyEngineRepo = "engine_repo"
	KeyEngineRef  = "engine_ref"
	KeyTempDir    = "temp_dir"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyEngineRepo, KeyEngineRef, KeyTempDir, KeyLogLevel, KeyLogFormat}

// Dir returns the path to the config directory (~/.bladegen/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.bladegen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyEngineRepo, branding.EngineRepoURL())
	viper.SetDefault(KeyTempDir, branding.TempDirName())
	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyLogFormat, "text")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// IsKnownKey reports whether key is one of Keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// EngineRepo returns the engine repository URL, checking (in order):
// 1. BLADEGEN_ENGINE_REPO env var
// 2. config key "engine_repo"
// 3. branding.EngineRepoURL()
func EngineRepo() string {
	if v := Get(KeyEngineRepo); v != "" {
		return v
	}
	return branding.EngineRepoURL()
}

// EngineRef returns the branch or tag to clone. Empty means the remote default.
func EngineRef() string { return Get(KeyEngineRef) }

// TempDir returns the temporary clone path. Relative paths are resolved
// against baseDir.
func TempDir(baseDir string) string {
	dir := Get(KeyTempDir)
	if dir == "" {
		dir = branding.TempDirName()
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

// LogLevel returns the configured log level name.
func LogLevel() string { return Get(KeyLogLevel) }

// LogFormat returns the configured log format ("text" or "json").
func LogFormat() string { return Get(KeyLogFormat) }
