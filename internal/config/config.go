// SPDX-License-Identifier: MPL-2.0

// Package config loads modvet's configuration: the requested locale,
// the output format, and the optional inspection toggles. Configuration
// lives in a TOML file in the platform config directory and every value
// has a default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "modvet"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ErrConfigExists is returned by Scaffold when a config file is already
// present.
var ErrConfigExists = errors.New("config file already exists")

// configDirOverride lets tests point the loader at a scratch directory.
var configDirOverride string

// Config holds every tunable of a modvet run.
type Config struct {
	// Locale selects the language for title/description resolution.
	Locale string `mapstructure:"locale" toml:"locale"`
	// Output is the default output format: "json" or "pretty".
	Output string `mapstructure:"output" toml:"output"`
	// Checksum enables MD5 checksums of inspected archives.
	Checksum bool `mapstructure:"checksum" toml:"checksum"`
	// SaveGame embeds a farm summary when a save game is detected.
	SaveGame bool `mapstructure:"save_game" toml:"save_game"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Locale: "en",
		Output: "json",
	}
}

// ConfigDir returns the modvet configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// FilePath returns the full path of the config file.
func FilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration from path, or from the platform config
// directory when path is empty. A missing file yields the defaults; a
// present-but-broken file is an error.
func Load(path string) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("checksum", defaults.Checksum)
	v.SetDefault("save_game", defaults.SaveGame)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return Config{}, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Scaffold writes a config file with the default values, creating the
// config directory as needed. It refuses to overwrite an existing file.
func Scaffold() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to render default config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
