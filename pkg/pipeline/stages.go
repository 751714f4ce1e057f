package pipeline

import (
	"context"
	"fmt"

	"github.com/arc-language/spralpkg/pkg/meson"
	"github.com/arc-language/spralpkg/pkg/metadata"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/arc-language/spralpkg/pkg/registry"
	"github.com/arc-language/spralpkg/pkg/requirements"
	"github.com/arc-language/spralpkg/pkg/sysreqs"
)

// Stage names, in execution order
const (
	StageConfigure          = "configure"
	StageValidate           = "validate"
	StageRequirements       = "requirements"
	StageBuildRequirements  = "build_requirements"
	StageSystemRequirements = "system_requirements"
	StageSource             = "source"
	StageGenerate           = "generate"
	StageBuild              = "build"
	StagePackage            = "package"
	StagePackageInfo        = "package_info"
)

// MinCppstd is the lowest C++ standard SPRAL compiles with
const MinCppstd = "11"

// State carries the typed results of the stages that already ran
type State struct {
	Recipe *Recipe

	Options          options.OptionSet          // configure
	Requirements     []requirements.Requirement // requirements
	ToolRequirements []requirements.Requirement // build_requirements
	ToolVersions     map[string]string          // build_requirements
	SystemPackages   *sysreqs.Result            // system_requirements
	Dependencies     []*registry.Entry          // generate
	MesonOptions     meson.OptionMap            // generate
	NativeFile       string                     // generate
	PkgConfigFiles   []string                   // generate
	Licenses         []string                   // package
	Metadata         *metadata.PackageMetadata  // package_info
	MetadataFile     string                     // package_info

	done map[string]bool
}

// Done reports whether stage completed
func (s *State) Done(stage string) bool {
	return s.done[stage]
}

// Stage is one named step of the recipe lifecycle
type Stage struct {
	Name string
	Run  func(ctx context.Context, p *Pipeline, st *State) error
}

// Stages returns the recipe lifecycle in execution order
func Stages() []Stage {
	return []Stage{
		{Name: StageConfigure, Run: runConfigure},
		{Name: StageValidate, Run: runValidate},
		{Name: StageRequirements, Run: runRequirements},
		{Name: StageBuildRequirements, Run: runBuildRequirements},
		{Name: StageSystemRequirements, Run: runSystemRequirements},
		{Name: StageSource, Run: runSource},
		{Name: StageGenerate, Run: runGenerate},
		{Name: StageBuild, Run: runBuild},
		{Name: StagePackage, Run: runPackage},
		{Name: StagePackageInfo, Run: runPackageInfo},
	}
}

// Configure returns the effective option set for the target. Windows has no
// position independent code, so fPIC is dropped there as well.
func Configure(o options.OptionSet, s platform.Settings) options.OptionSet {
	if s.IsWindows() {
		return o.WithoutFPIC()
	}
	return o
}

// Validate rejects configurations SPRAL cannot be built with
func Validate(s platform.Settings) error {
	return platform.CheckMinCppstd(s, MinCppstd)
}

func runConfigure(_ context.Context, _ *Pipeline, st *State) error {
	st.Options = Configure(st.Recipe.Options, st.Recipe.Settings)
	return nil
}

func runValidate(_ context.Context, _ *Pipeline, st *State) error {
	return Validate(st.Recipe.Settings)
}

func runRequirements(_ context.Context, _ *Pipeline, st *State) error {
	st.Requirements = requirements.Resolve(st.Options, st.Recipe.Settings)
	return nil
}

func runBuildRequirements(ctx context.Context, p *Pipeline, st *State) error {
	st.ToolRequirements = requirements.ToolRequirements(st.Recipe.Conf)
	return p.checkTools(ctx, st)
}

func runSource(ctx context.Context, p *Pipeline, st *State) error {
	return p.fetchSources(ctx, st)
}

func runGenerate(ctx context.Context, p *Pipeline, st *State) error {
	return p.generate(ctx, st)
}

func runBuild(ctx context.Context, p *Pipeline, st *State) error {
	m := p.meson(st)
	if err := m.Configure(ctx); err != nil {
		return err
	}
	return m.Build(ctx)
}

func runPackage(ctx context.Context, p *Pipeline, st *State) error {
	return p.pack(ctx, st)
}

func runPackageInfo(_ context.Context, _ *Pipeline, st *State) error {
	st.Metadata = metadata.Emit(st.Options, st.Recipe.Settings, st.Recipe.Version)
	if !st.Done(StagePackage) {
		return nil
	}

	path, err := metadata.Write(st.Recipe.Paths.Package, st.Metadata)
	if err != nil {
		return err
	}
	st.MetadataFile = path
	return nil
}

func runSystemRequirements(ctx context.Context, p *Pipeline, st *State) error {
	res, err := sysreqs.Ensure(ctx, p.runner, p.host, st.Recipe.Conf, st.Options, st.Recipe.Settings)
	if err != nil {
		return err
	}
	st.SystemPackages = res
	return nil
}

// stageIndex returns the position of name in the lifecycle
func stageIndex(stages []Stage, name string) (int, error) {
	for i, s := range stages {
		if s.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}
