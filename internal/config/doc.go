// Package config manages user-level settings stored at ~/.bladegen/config.yaml.
// It resolves the generation settings (engine repository, engine ref, temporary
// clone path, log level) from the environment, the config file, and the
// compiled-in branding defaults.
package config
