// Package apt checks and installs the Debian system packages a build needs.
package apt

import (
	"context"
	"fmt"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
)

// Config configures the package manager
type Config struct {
	Mode       Mode
	Sudo       bool
	HostArch   Architecture // Architecture of the build machine
	TargetArch Architecture // Architecture the package is built for
}

// PackageManager runs apt-get and dpkg-query through a core.Runner
type PackageManager struct {
	runner core.Runner
	config Config
}

// NewPackageManager creates a package manager
func NewPackageManager(runner core.Runner, cfg Config) *PackageManager {
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	return &PackageManager{runner: runner, config: cfg}
}

// ConfigFromConf reads the package manager conf keys
func ConfigFromConf(conf core.Conf) (Config, error) {
	mode, ok := ParseMode(conf.Get(core.ConfSystemPMMode, ""))
	if !ok {
		return Config{}, core.Configurationf("%s: invalid mode %q (want check, report or install)",
			core.ConfSystemPMMode, conf.Get(core.ConfSystemPMMode, ""))
	}
	return Config{
		Mode: mode,
		Sudo: conf.Bool(core.ConfSystemPMSudo, false),
	}, nil
}

// PackageName returns the name to query and install for pkg, with a
// :<arch> suffix when cross-building
func (pm *PackageManager) PackageName(pkg string) string {
	if pm.config.TargetArch != "" && pm.config.HostArch != "" && pm.config.TargetArch != pm.config.HostArch {
		return pkg + ":" + pm.config.TargetArch.String()
	}
	return pkg
}

// Missing returns the packages that are not installed
func (pm *PackageManager) Missing(ctx context.Context, packages []string) []string {
	var missing []string
	for _, p := range packages {
		name := pm.PackageName(p)
		out, err := pm.runner.Output(ctx, core.Command{
			Name: dpkgQuery,
			Args: []string{"-W", "-f=${db:Status-Abbrev}", name},
		})
		if err != nil || !strings.HasPrefix(strings.TrimSpace(out), "ii") {
			missing = append(missing, name)
		}
	}
	return missing
}

// Install installs packages with apt-get
func (pm *PackageManager) Install(ctx context.Context, packages []string) error {
	args := append([]string{"install", "-y", "--no-install-recommends"}, packages...)
	cmd := core.Command{Name: aptGet, Args: args, Env: []string{"DEBIAN_FRONTEND=noninteractive"}}
	if pm.config.Sudo {
		cmd = core.Command{Name: sudo, Args: append([]string{"-E", aptGet}, args...), Env: cmd.Env}
	}

	if err := pm.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("apt-get install %s: %w", strings.Join(packages, " "), err)
	}
	return nil
}

// Ensure applies the configured mode to packages
func (pm *PackageManager) Ensure(ctx context.Context, packages []string) error {
	logger := logging.FromContext(ctx)

	if pm.config.Mode == ModeReport {
		names := make([]string, 0, len(packages))
		for _, p := range packages {
			names = append(names, pm.PackageName(p))
		}
		logger.Info("system packages required", "packages", names)
		return nil
	}

	missing := pm.Missing(ctx, packages)
	if len(missing) == 0 {
		logger.Debug("system packages present", "packages", packages)
		return nil
	}

	switch pm.config.Mode {
	case ModeInstall:
		logger.Info("installing system packages", "packages", missing)
		return pm.Install(ctx, missing)
	default:
		return core.Configurationf("system packages missing: %s (install them or set %s=install)",
			strings.Join(missing, " "), core.ConfSystemPMMode)
	}
}
