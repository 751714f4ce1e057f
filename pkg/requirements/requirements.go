// Package requirements resolves the pinned dependency graph of the recipe.
package requirements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
)

// Pinned dependency references
const (
	Metis      = "metis"
	OpenBLAS   = "openblas"
	Hwloc      = "hwloc"
	LLVMOpenMP = "llvm-openmp"
	Meson      = "meson"
	Pkgconf    = "pkgconf"

	MetisVersion      = "5.2.1"
	OpenBLASVersion   = "0.3.30"
	HwlocVersion      = "2.11.1"
	LLVMOpenMPVersion = "20.1.6"

	MesonRange   = "[>=1.2.3 <2]"
	PkgconfRange = "[>=2.2 <3]"

	// MetisWith64BitTypes is the metis option that must follow with_64bit_int
	MetisWith64BitTypes = "with_64bit_types"
)

// optionDefaults are the values a dependency is built with when its
// metadata does not record the option
var optionDefaults = map[string]map[string]string{
	Metis: {MetisWith64BitTypes: options.FormatBool(false)},
}

// OptionDefault returns the default value of option for package name
func OptionDefault(name, option string) (string, bool) {
	v, ok := optionDefaults[name][option]
	return v, ok
}

// Requirement is a dependency on another package
type Requirement struct {
	Name       string            `yaml:"name" toml:"name"`
	Constraint string            `yaml:"version" toml:"version"`
	Options    map[string]string `yaml:"options,omitempty" toml:"options,omitempty"`
	Tool       bool              `yaml:"tool,omitempty" toml:"tool,omitempty"`
}

// String renders the requirement as name/constraint
func (r Requirement) String() string {
	return r.Name + "/" + r.Constraint
}

// Satisfies reports whether version meets the requirement's constraint
func (r Requirement) Satisfies(version string) (bool, error) {
	c, err := ParseConstraint(r.Constraint)
	if err != nil {
		return false, err
	}
	return c.Check(version)
}

// Resolve returns the host requirements for the given options and target.
// The three numeric dependencies are always present; the external OpenMP
// runtime is only added when the compiler does not bring its own.
func Resolve(o options.OptionSet, s platform.Settings) []Requirement {
	reqs := []Requirement{
		{
			Name:       Metis,
			Constraint: MetisVersion,
			Options:    map[string]string{MetisWith64BitTypes: options.FormatBool(o.With64BitInt())},
		},
		{Name: OpenBLAS, Constraint: OpenBLASVersion},
		{Name: Hwloc, Constraint: HwlocVersion},
	}

	if NeedsOpenMPPackage(o, s) {
		reqs = append(reqs, Requirement{Name: LLVMOpenMP, Constraint: LLVMOpenMPVersion})
	}

	return reqs
}

// NeedsOpenMPPackage reports whether the llvm-openmp package is required.
// GCC ships libgomp, and Windows toolchains bring their own runtime.
func NeedsOpenMPPackage(o options.OptionSet, s platform.Settings) bool {
	return o.WithOpenMP() && !s.IsWindows() && !s.IsGCC()
}

// ToolRequirements returns the build-time tools. pkgconf is skipped when the
// configuration already points at a pkg-config executable.
func ToolRequirements(conf core.Conf) []Requirement {
	reqs := []Requirement{{Name: Meson, Constraint: MesonRange, Tool: true}}
	if conf.Get(core.ConfPkgConfig, "") == "" {
		reqs = append(reqs, Requirement{Name: Pkgconf, Constraint: PkgconfRange, Tool: true})
	}
	return reqs
}

// Find returns the requirement called name
func Find(reqs []Requirement, name string) (Requirement, bool) {
	for _, r := range reqs {
		if r.Name == name {
			return r, true
		}
	}
	return Requirement{}, false
}

// Names returns the sorted requirement names
func Names(reqs []Requirement) []string {
	names := make([]string, 0, len(reqs))
	for _, r := range reqs {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}

// ParseReference splits "name/version" into its parts
func ParseReference(ref string) (name, version string, err error) {
	name, version, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok || name == "" || version == "" {
		return "", "", fmt.Errorf("invalid reference %q, expected name/version", ref)
	}
	return name, version, nil
}
