// Package sysreqs declares the system packages the packaged library needs
// at run time and hands them to the host package manager.
package sysreqs

import (
	"context"

	"github.com/arc-language/spralpkg/pkg/apt"
	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
)

// Packages returns the Debian packages providing the GNU Fortran runtime.
// Only gcc builds link against them.
func Packages(o options.OptionSet, s platform.Settings) []string {
	if !s.IsGCC() {
		return nil
	}
	pkgs := []string{"libgfortran5", "libquadmath0"}
	if o.WithOpenMP() {
		pkgs = append(pkgs, "libgomp1")
	}
	return pkgs
}

// Result reports what the system requirements stage did
type Result struct {
	Packages []string
	Skipped  string // reason the stage did nothing, if it did nothing
}

// Ensure checks, reports or installs the system packages according to the
// conf. Hosts other than Linux with apt-get are skipped.
func Ensure(ctx context.Context, runner core.Runner, host *platform.Platform, conf core.Conf, o options.OptionSet, s platform.Settings) (*Result, error) {
	logger := logging.FromContext(ctx)

	res := &Result{Packages: Packages(o, s)}
	switch {
	case len(res.Packages) == 0:
		res.Skipped = "no system packages required"
	case host.OS != "linux":
		res.Skipped = "host is not Linux"
	case !host.Has("apt-get"):
		res.Skipped = "apt-get not available"
	}
	if res.Skipped != "" {
		logger.Info("system requirements skipped", "reason", res.Skipped, "packages", res.Packages)
		return res, nil
	}

	cfg, err := apt.ConfigFromConf(conf)
	if err != nil {
		return nil, err
	}
	if hostArch, err := apt.DetectArchitecture(); err == nil {
		cfg.HostArch = hostArch
	}
	if targetArch, err := apt.FromSettings(s.Arch); err == nil {
		cfg.TargetArch = targetArch
	}

	if err := apt.NewPackageManager(runner, cfg).Ensure(ctx, res.Packages); err != nil {
		return nil, err
	}
	return res, nil
}
