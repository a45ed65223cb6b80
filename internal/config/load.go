package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		resolveRelative(cfg, filepath.Dir(configPath))
	}

	applyFlags(cfg)
	applyModelArg(cfg, flag.Args())
	cfg.Validate()

	return cfg, nil
}

// resolveRelative rebases relative scene paths read from a config file onto
// the directory holding that file, so a config works from any working dir.
func resolveRelative(cfg *Config, dir string) {
	for _, p := range []*string{&cfg.Scene.ModelPath, &cfg.Scene.ShaderDir} {
		if *p == "" {
			continue
		}
		*p = expandHome(*p)
		if !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// applyModelArg lets the first positional argument name the model. -model
// still wins; a config file value loses to both.
func applyModelArg(cfg *Config, args []string) {
	if *flagModel != "" || len(args) == 0 || args[0] == "" {
		return
	}
	cfg.Scene.ModelPath = expandHome(args[0])
}

// expandHome replaces a leading "~/" with the user home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "learngl")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "learngl")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "learngl")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "learngl")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
