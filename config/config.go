// Package config loads the optional hatch configuration file. A missing
// file yields defaults; a malformed one is fatal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const envOverride = "HATCH_CONFIG"

type (
	Config struct {
		ProjectsDir  string   `toml:"projects_dir"`
		Python       string   `toml:"python"`
		Dependencies []string `toml:"dependencies"`
		Visibility   string   `toml:"visibility"`
		Audit        Audit    `toml:"audit"`
	}

	Audit struct {
		Path       string `toml:"path"`
		MaxSizeMB  int    `toml:"max_size_mb"`
		MaxBackups int    `toml:"max_backups"`
	}
)

func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		ProjectsDir:  cwd,
		Python:       "python3",
		Dependencies: []string{"pytest", "ruff", "mypy"},
		Visibility:   "public",
		Audit: Audit{
			Path:       filepath.Join(home, ".local", "state", "hatch", "audit.log"),
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Load reads the config file at $HATCH_CONFIG, falling back to
// ~/.config/hatch/config.toml. Fields absent from the file keep their
// default values.
func Load() (*Config, error) {
	path := os.Getenv(envOverride)

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate home directory: %s", err.Error())
		}

		path = filepath.Join(home, ".config", "hatch", "config.toml")
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %s", path, err.Error())
	}

	err = toml.Unmarshal(contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("malformed config file %q: %s", path, err.Error())
	}

	cfg.ProjectsDir = expandTilde(cfg.ProjectsDir)
	cfg.Audit.Path = expandTilde(cfg.Audit.Path)

	if cfg.Visibility != "public" && cfg.Visibility != "private" {
		return nil, fmt.Errorf("config file %q: visibility must be public or private, got %q", path, cfg.Visibility)
	}

	return cfg, nil
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
