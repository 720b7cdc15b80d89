// Package config loads the mensa-cli configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the configuration stored in ~/.config/mensa-cli/config.toml.
type Config struct {
	Locations Locations `toml:"locations"`
}

// Locations holds the configured cities and the fallback canteen set used
// when no id or location is given on the command line.
type Locations struct {
	Cities      []string     `toml:"cities"`
	Coordinates []Coordinate `toml:"coordinates,omitempty"`
	Canteens    []int        `toml:"canteens"`
}

// Coordinate pins a configured city to a geographic position.
type Coordinate struct {
	City      string  `toml:"city"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "mensa-cli"
	// ConfigFile is the config file name.
	ConfigFile = "config.toml"
)

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/mensa-cli/config.toml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// ExpandTilde expands a leading ~ in a path to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads the configuration file. There is no default configuration: a
// missing or unparseable file is an error the caller treats as fatal.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("locating config file: home directory unknown")
	}

	data, err := os.ReadFile(ExpandTilde(path))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
