// Package spralpkg builds and packages the SPRAL sparse linear algebra
// library with Meson against a local registry of prebuilt dependencies.
package spralpkg

import (
	"context"
	"fmt"
	"os"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/index"
	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/metadata"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/pipeline"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/arc-language/spralpkg/pkg/source"
)

// Version of spralpkg
const Version = "0.1.0"

// Re-export types for convenience
type (
	Config          = core.Config
	Conf            = core.Conf
	Recipe          = pipeline.Recipe
	State           = pipeline.State
	Inspection      = pipeline.Inspection
	OptionSet       = options.OptionSet
	Settings        = platform.Settings
	PackageMetadata = metadata.PackageMetadata
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// Manager builds SPRAL packages for one configuration
type Manager struct {
	config *core.Config
	host   *platform.Platform
	data   *source.Data
	runner core.Runner
}

// NewManager creates a manager for config on the current host
func NewManager(config *core.Config) (*Manager, error) {
	if config == nil {
		config = core.DefaultConfig()
	}

	host, err := platform.Detect()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrPlatformNotSupported, err)
	}

	data, err := source.LoadData(config.ConanData)
	if err != nil {
		return nil, err
	}

	return &Manager{
		config: config,
		host:   host,
		data:   data,
		runner: &core.ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr},
	}, nil
}

// Host returns the detected host platform
func (m *Manager) Host() *platform.Platform {
	return m.host
}

// Versions lists the SPRAL versions with known sources, newest first
func (m *Manager) Versions() []string {
	return m.data.Versions()
}

// Recipe resolves settings and options into the run configuration
func (m *Manager) Recipe(ctx context.Context) (*Recipe, error) {
	version := m.config.Version
	if version == "" {
		version = m.data.Latest()
	}
	if _, err := m.data.Source(version); err != nil {
		return nil, err
	}

	s, err := platform.ResolveSettings(ctx, m.host, m.config.Settings)
	if err != nil {
		return nil, err
	}

	paths := pipeline.NewPaths(m.config.Workspace, m.config.PackagePath, m.config.DepsPath, version)
	return pipeline.NewRecipe(version, m.config.Options, s, m.config.Conf, paths)
}

// Inspect reports what the recipe would do without side effects
func (m *Manager) Inspect(ctx context.Context) (*Inspection, error) {
	r, err := m.Recipe(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.Inspect(r)
}

// Create runs the whole recipe: fetch, build, package
func (m *Manager) Create(ctx context.Context) (*State, error) {
	return m.run(ctx, pipeline.StagePackageInfo)
}

// Source fetches and patches the sources only
func (m *Manager) Source(ctx context.Context) (*State, error) {
	return m.run(ctx, pipeline.StageSource)
}

// Sync refreshes the dependency registry from the configured repository
func (m *Manager) Sync(ctx context.Context) (int, error) {
	if m.config.RegistryURL == "" {
		return 0, fmt.Errorf("no registry_url configured")
	}
	return index.Sync(ctx, m.config.RegistryURL, "", m.config.DepsPath)
}

func (m *Manager) run(ctx context.Context, last string) (*State, error) {
	r, err := m.Recipe(ctx)
	if err != nil {
		return nil, err
	}

	// Sync if deps folder doesn't exist yet
	if _, err := os.Stat(m.config.DepsPath); os.IsNotExist(err) && m.config.RegistryURL != "" {
		if _, err := m.Sync(ctx); err != nil {
			return nil, fmt.Errorf("failed to sync dependency registry: %w", err)
		}
	}

	p, err := pipeline.New(r, pipeline.Config{
		Runner: m.runner,
		Host:   m.host,
		Data:   m.data,
		Jobs:   m.config.Jobs,
	})
	if err != nil {
		return nil, err
	}

	st, runErr := p.RunUntil(ctx, r, last)

	if m.config.MetricsFile != "" {
		if err := p.Metrics().WriteFile(m.config.MetricsFile); err != nil {
			logging.FromContext(ctx).Warn("writing metrics failed", "path", m.config.MetricsFile, "error", err)
		}
	}

	return st, runErr
}

// ReadPackageInfo loads the metadata of a package folder
func ReadPackageInfo(packageDir string) (*PackageMetadata, error) {
	return metadata.Read(packageDir)
}
