package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds spralpkg configuration, the equivalent of a build profile
type Config struct {
	Settings    map[string]string `yaml:"settings"`
	Options     map[string]string `yaml:"options"`
	Conf        Conf              `yaml:"conf"`
	Version     string            `yaml:"version"`
	DepsPath    string            `yaml:"deps_path"`
	RegistryURL string            `yaml:"registry_url"`
	Workspace   string            `yaml:"workspace"`
	PackagePath string            `yaml:"package_path"`
	ConanData   string            `yaml:"conandata"`
	Jobs        int               `yaml:"jobs"`
	Debug       bool              `yaml:"debug"`
	LogFormat   string            `yaml:"log_format"`
	MetricsFile string            `yaml:"metrics_file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Settings:    make(map[string]string),
		Options:     make(map[string]string),
		Conf:        make(Conf),
		DepsPath:    getDefaultPath("SPRALPKG_DEPS_PATH", "deps"),
		Workspace:   getDefaultPath("SPRALPKG_WORKSPACE", "work"),
		PackagePath: getDefaultPath("SPRALPKG_PACKAGE_PATH", "package"),
		Jobs:        runtime.NumCPU(),
		Debug:       false,
		LogFormat:   "text",
	}
}

// LoadConfig loads configuration from file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "spralpkg", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "spralpkg", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// fillDefaults restores defaults for fields a partial file zeroed out
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Settings == nil {
		c.Settings = def.Settings
	}
	if c.Options == nil {
		c.Options = def.Options
	}
	if c.Conf == nil {
		c.Conf = def.Conf
	}
	if c.DepsPath == "" {
		c.DepsPath = def.DepsPath
	}
	if c.Workspace == "" {
		c.Workspace = def.Workspace
	}
	if c.PackagePath == "" {
		c.PackagePath = def.PackagePath
	}
	if c.Jobs <= 0 {
		c.Jobs = def.Jobs
	}
	if c.LogFormat == "" {
		c.LogFormat = def.LogFormat
	}
}

func getDefaultPath(envVar, leaf string) string {
	if path := os.Getenv(envVar); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "spralpkg", leaf)
	}

	return filepath.Join(home, ".spralpkg", leaf)
}
