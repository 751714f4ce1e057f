package meson

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
)

// Meson drives the configure, build and install lifecycle of the wrapped
// project. Failures are reported as upstream build failures and never retried.
type Meson struct {
	Binary     string // meson executable
	SourceDir  string // project root containing meson.build
	BuildDir   string // out-of-tree build directory
	PackageDir string // install destination
	NativeFile string // machine file written by Toolchain.Write
	Jobs       int    // parallel compile jobs, 0 lets meson decide

	runner core.Runner
}

// New creates a Meson driver using runner for process execution
func New(runner core.Runner, conf core.Conf) *Meson {
	return &Meson{
		Binary: conf.Get(core.ConfMesonBinary, "meson"),
		Jobs:   conf.Int(core.ConfBuildJobs, 0),
		runner: runner,
	}
}

// Configure runs meson setup, reconfiguring an already configured build dir
func (m *Meson) Configure(ctx context.Context) error {
	if m.SourceDir == "" || m.BuildDir == "" {
		return fmt.Errorf("meson configure: source and build folders are required")
	}

	args := []string{"setup"}
	if m.NativeFile != "" {
		args = append(args, "--native-file", m.NativeFile)
	}
	if isConfigured(m.BuildDir) {
		args = append(args, "--reconfigure")
	}
	args = append(args, m.BuildDir, m.SourceDir)

	return m.run(ctx, "meson setup", args)
}

// Build compiles the configured project
func (m *Meson) Build(ctx context.Context) error {
	args := []string{"compile", "-C", m.BuildDir}
	if m.Jobs > 0 {
		args = append(args, "-j", strconv.Itoa(m.Jobs))
	}
	return m.run(ctx, "meson compile", args)
}

// Install installs the build results into PackageDir
func (m *Meson) Install(ctx context.Context) error {
	if m.PackageDir == "" {
		return fmt.Errorf("meson install: package folder is required")
	}
	args := []string{"install", "-C", m.BuildDir, "--destdir", m.PackageDir}
	return m.run(ctx, "meson install", args)
}

func (m *Meson) run(ctx context.Context, op string, args []string) error {
	cmd := core.Command{Name: m.Binary, Args: args}
	logging.FromContext(ctx).Debug("running meson", "cmd", cmd.String())

	if err := m.runner.Run(ctx, cmd); err != nil {
		return core.Upstream(op, err)
	}
	return nil
}

// isConfigured reports whether meson setup already ran in dir
func isConfigured(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "meson-private", "coredata.dat"))
	return err == nil
}
