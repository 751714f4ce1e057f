package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/env"
	"github.com/arc-language/spralpkg/pkg/logging"
	"github.com/arc-language/spralpkg/pkg/meson"
	"github.com/arc-language/spralpkg/pkg/metadata"
	"github.com/arc-language/spralpkg/pkg/pkgconfig"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/arc-language/spralpkg/pkg/registry"
	"github.com/arc-language/spralpkg/pkg/requirements"
	"github.com/arc-language/spralpkg/pkg/source"
)

// fetchSources replaces the source folder with freshly fetched, patched
// upstream sources
func (p *Pipeline) fetchSources(ctx context.Context, st *State) error {
	r := st.Recipe
	logger := logging.FromContext(ctx)

	src, err := p.data.Source(r.Version)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(r.Paths.Source); err != nil {
		return fmt.Errorf("cleaning source folder: %w", err)
	}
	if err := p.fetcher.Fetch(ctx, src, r.Paths.Source); err != nil {
		return err
	}
	logger.Info("sources ready", "path", r.Paths.Source)

	if err := source.ApplyPatches(ctx, p.runner, r.Conf, r.Paths.Source, p.data.PatchFiles(r.Version)); err != nil {
		return err
	}

	return source.RewriteLibraryLookups(r.Paths.Source)
}

// generate resolves the dependencies from the registry and writes their
// pkg-config files and the meson native file
func (p *Pipeline) generate(ctx context.Context, st *State) error {
	r := st.Recipe
	logger := logging.FromContext(ctx)

	deps := make([]*registry.Entry, 0, len(st.Requirements))
	for _, req := range st.Requirements {
		entry, err := p.registry.Resolve(req)
		if err != nil {
			return err
		}
		logger.Info("resolved dependency", "requirement", req.String(), "package", entry.Ref(), "root", entry.Root)
		deps = append(deps, entry)
	}
	st.Dependencies = deps

	files, err := pkgconfig.Generate(ctx, deps, r.Paths.Generators)
	if err != nil {
		return err
	}
	st.PkgConfigFiles = files

	tc := meson.NewToolchain(st.Options, r.Settings, r.Conf, r.Paths.Generators)
	st.MesonOptions = tc.ProjectOptions

	native, err := tc.Write(r.Paths.Generators)
	if err != nil {
		return err
	}
	st.NativeFile = native
	logger.Debug("wrote native file", "path", native, "project_options", tc.ProjectOptions.Args())

	return nil
}

// meson returns the meson driver for the run folders
func (p *Pipeline) meson(st *State) *meson.Meson {
	r := st.Recipe

	m := meson.New(p.runner, r.Conf)
	m.SourceDir = r.Paths.Source
	m.BuildDir = r.Paths.Build
	m.PackageDir = r.Paths.Package
	m.NativeFile = st.NativeFile
	if m.NativeFile == "" {
		m.NativeFile = filepath.Join(r.Paths.Generators, meson.NativeFileName)
	}
	if m.Jobs == 0 {
		m.Jobs = p.jobs
	}
	return m
}

// checkTools runs every build tool with --version and checks the reported
// version against its requirement. A configured pkg-config executable only
// has to run.
func (p *Pipeline) checkTools(ctx context.Context, st *State) error {
	logger := logging.FromContext(ctx)
	conf := st.Recipe.Conf

	st.ToolVersions = make(map[string]string, len(st.ToolRequirements))
	for _, req := range st.ToolRequirements {
		bin := toolBinary(req, conf)
		out, err := p.runner.Output(ctx, core.Command{Name: bin, Args: []string{"--version"}})
		if err != nil {
			return core.Configurationf("build tool %s not usable (%s): %v", req.String(), bin, err)
		}

		version := toolVersion(out)
		ok, err := req.Satisfies(version)
		if err != nil {
			return core.Configurationf("build tool %s: %v", req.Name, err)
		}
		if !ok {
			return core.Configurationf("build tool %s %s does not satisfy %s", req.Name, version, req.Constraint)
		}

		st.ToolVersions[req.Name] = version
		logger.Info("build tool found", "tool", req.Name, "binary", bin, "version", version)
	}

	if pc := conf.Get(core.ConfPkgConfig, ""); pc != "" {
		if _, err := p.runner.Output(ctx, core.Command{Name: pc, Args: []string{"--version"}}); err != nil {
			return core.Configurationf("%s=%s cannot run: %v", core.ConfPkgConfig, pc, err)
		}
	}
	return nil
}

// toolBinary returns the executable providing a tool requirement
func toolBinary(req requirements.Requirement, conf core.Conf) string {
	if req.Name == requirements.Meson {
		return conf.Get(core.ConfMesonBinary, "meson")
	}
	return req.Name
}

// toolVersion picks the first token of a --version output that starts with
// a digit, e.g. "pkgconf 2.2.0" -> "2.2.0"
func toolVersion(out string) string {
	for _, f := range strings.Fields(out) {
		if f[0] >= '0' && f[0] <= '9' {
			return f
		}
	}
	return strings.TrimSpace(out)
}

// pack installs the build into the package folder and tidies it up
func (p *Pipeline) pack(ctx context.Context, st *State) error {
	r := st.Recipe
	logger := logging.FromContext(ctx)
	folder := env.New(r.Paths.Package, r.Settings.OS)

	licenses, err := folder.CopyLicenses(r.Paths.Source)
	if err != nil {
		logger.Warn("package has no license file", "error", err)
	}
	st.Licenses = licenses

	if err := p.meson(st).Install(ctx); err != nil {
		return err
	}

	removed, err := folder.RemoveFiles("*.pdb")
	if err != nil {
		return fmt.Errorf("removing debug databases: %w", err)
	}
	if removed > 0 {
		logger.Debug("removed debug databases", "count", removed)
	}

	if r.Settings.OS == platform.OSMacos {
		if err := p.fixInstallNames(ctx, folder, r.Conf); err != nil {
			return err
		}
	}

	if !folder.HasLibrary(metadata.Name) {
		return core.Upstream("meson install", fmt.Errorf("library %s not found in %v", metadata.Name, folder.GetLibraryPaths()))
	}
	return nil
}

// fixInstallNames makes the shared libraries relocatable by giving them an
// @rpath install name
func (p *Pipeline) fixInstallNames(ctx context.Context, folder *env.Environment, conf core.Conf) error {
	tool := conf.Get(core.ConfInstallName, "install_name_tool")
	for _, lib := range folder.FindAllSharedLibraries() {
		cmd := core.Command{
			Name: tool,
			Args: []string{"-id", "@rpath/" + filepath.Base(lib.Path), lib.Path},
		}
		if err := p.runner.Run(ctx, cmd); err != nil {
			return fmt.Errorf("fixing install name of %s: %w", filepath.Base(lib.Path), err)
		}
	}
	return nil
}
