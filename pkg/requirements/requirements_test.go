package requirements

import (
	"testing"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opts(shared, openmp, wide bool) options.OptionSet {
	return options.Normalize(options.Raw{Shared: &shared, WithOpenMP: &openmp, With64BitInt: &wide})
}

func TestResolve_FixedDependencies(t *testing.T) {
	reqs := Resolve(options.Defaults(), platform.Settings{OS: platform.OSLinux, Compiler: platform.CompilerGCC})

	for _, want := range []string{"metis/5.2.1", "openblas/0.3.30", "hwloc/2.11.1"} {
		name, _, err := ParseReference(want)
		require.NoError(t, err)
		r, ok := Find(reqs, name)
		require.True(t, ok, "missing %s", want)
		assert.Equal(t, want, r.String())
	}
}

func TestResolve_MetisFollows64BitInt(t *testing.T) {
	for _, shared := range []bool{false, true} {
		for _, openmp := range []bool{false, true} {
			for _, wide := range []bool{false, true} {
				o := opts(shared, openmp, wide)
				for _, s := range []platform.Settings{
					{OS: platform.OSLinux, Compiler: platform.CompilerGCC},
					{OS: platform.OSMacos, Compiler: platform.CompilerAppleClang},
					{OS: platform.OSWindows, Compiler: platform.CompilerMSVC},
				} {
					metis, ok := Find(Resolve(o, s), Metis)
					require.True(t, ok)
					assert.Equal(t, options.FormatBool(wide), metis.Options[MetisWith64BitTypes])
				}
			}
		}
	}
}

func TestResolve_OpenMPPackage(t *testing.T) {
	tests := []struct {
		name     string
		openmp   bool
		os       platform.OS
		compiler platform.Compiler
		want     bool
	}{
		{name: "linux gcc", openmp: true, os: platform.OSLinux, compiler: platform.CompilerGCC, want: false},
		{name: "linux clang", openmp: true, os: platform.OSLinux, compiler: platform.CompilerClang, want: true},
		{name: "macos apple-clang", openmp: true, os: platform.OSMacos, compiler: platform.CompilerAppleClang, want: true},
		{name: "windows msvc", openmp: true, os: platform.OSWindows, compiler: platform.CompilerMSVC, want: false},
		{name: "windows clang", openmp: true, os: platform.OSWindows, compiler: platform.CompilerClang, want: false},
		{name: "windows gcc", openmp: true, os: platform.OSWindows, compiler: platform.CompilerGCC, want: false},
		{name: "openmp disabled", openmp: false, os: platform.OSLinux, compiler: platform.CompilerClang, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := platform.Settings{OS: tt.os, Compiler: tt.compiler}
			o := opts(false, tt.openmp, false)

			_, got := Find(Resolve(o, s), LLVMOpenMP)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, NeedsOpenMPPackage(o, s))
		})
	}
}

func TestToolRequirements(t *testing.T) {
	reqs := ToolRequirements(core.Conf{})
	assert.Equal(t, []string{"meson", "pkgconf"}, Names(reqs))

	reqs = ToolRequirements(core.Conf{core.ConfPkgConfig: "/usr/bin/pkg-config"})
	assert.Equal(t, []string{"meson"}, Names(reqs))
	assert.True(t, reqs[0].Tool)
}

func TestOptionDefault(t *testing.T) {
	v, ok := OptionDefault(Metis, MetisWith64BitTypes)
	require.True(t, ok)
	assert.Equal(t, "False", v)

	_, ok = OptionDefault(OpenBLAS, "use_thread")
	assert.False(t, ok)
}

func TestConstraint(t *testing.T) {
	tests := []struct {
		expr    string
		version string
		want    bool
	}{
		{expr: "5.2.1", version: "5.2.1", want: true},
		{expr: "5.2.1", version: "5.2.2", want: false},
		{expr: "[>=1.2.3 <2]", version: "1.6.0", want: true},
		{expr: "[>=1.2.3 <2]", version: "1.2.2", want: false},
		{expr: "[>=1.2.3 <2]", version: "2.0.0", want: false},
		{expr: "[>= 2.2 < 3]", version: "2.4.3", want: true},
		{expr: "[<1 || >=2.2]", version: "2.3", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr+" "+tt.version, func(t *testing.T) {
			ok, err := Requirement{Name: "x", Constraint: tt.expr}.Satisfies(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestConstraint_Best(t *testing.T) {
	c, err := ParseConstraint("[>=1.2.3 <2]")
	require.NoError(t, err)

	best, ok := c.Best([]string{"1.1.0", "1.4.0", "1.9.1", "2.0.0", "not-a-version"})
	require.True(t, ok)
	assert.Equal(t, "1.9.1", best)

	_, ok = c.Best([]string{"0.9"})
	assert.False(t, ok)
}

func TestParseConstraint_Invalid(t *testing.T) {
	_, err := ParseConstraint("")
	assert.Error(t, err)
	_, err = ParseConstraint("[>=1.0")
	assert.Error(t, err)
}
