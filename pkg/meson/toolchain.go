package meson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
)

// NativeFileName is the machine file written into the generators folder
const NativeFileName = "conan_meson_native.ini"

// Toolchain is the content of a Meson native file
type Toolchain struct {
	Binaries       map[string]any
	Properties     map[string]any
	BuiltinOptions map[string]any
	ProjectOptions OptionMap
}

// NewToolchain assembles the native file for the given configuration.
// generatorsDir is where pkg-config files for dependencies live.
func NewToolchain(o options.OptionSet, s platform.Settings, conf core.Conf, generatorsDir string) *Toolchain {
	tc := &Toolchain{
		Binaries:       map[string]any{},
		Properties:     map[string]any{},
		BuiltinOptions: map[string]any{},
		ProjectOptions: BuildOptions(o),
	}

	b := tc.BuiltinOptions
	b["buildtype"] = mesonBuildType(s.BuildType)
	b["b_ndebug"] = "if-release"
	b["prefix"] = "/"
	b["bindir"] = "bin"
	b["libdir"] = "lib"
	b["includedir"] = "include"
	b["backend"] = "ninja"
	b["pkg_config_path"] = generatorsDir

	if o.Shared() {
		b["default_library"] = "shared"
	} else {
		b["default_library"] = "static"
	}
	if fpic, ok := o.FPIC(); ok && !o.Shared() {
		b["b_staticpic"] = fpic
	}
	if std := cppStd(s); std != "" {
		b["cpp_std"] = std
	}
	if s.Compiler == platform.CompilerMSVC {
		if s.BuildType == platform.BuildDebug {
			b["b_vscrt"] = "mdd"
		} else {
			b["b_vscrt"] = "md"
		}
	}

	if pc := conf.Get(core.ConfPkgConfig, ""); pc != "" {
		tc.Binaries["pkgconfig"] = pc
	} else {
		tc.Binaries["pkgconfig"] = "pkgconf"
	}
	for env, key := range map[string]string{"CC": "c", "CXX": "cpp", "FC": "fortran"} {
		if v := os.Getenv(env); v != "" {
			tc.Binaries[key] = v
		}
	}

	tc.Properties["needs_exe_wrapper"] = false

	return tc
}

// Render returns the native file text with sections and keys in a stable order
func (tc *Toolchain) Render() string {
	var sb strings.Builder
	section := func(name string, values map[string]any) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&sb, "[%s]\n", name)
		for _, k := range OptionMap(values).Keys() {
			fmt.Fprintf(&sb, "%s = %s\n", k, literal(values[k]))
		}
		sb.WriteString("\n")
	}

	section("binaries", tc.Binaries)
	section("properties", tc.Properties)
	section("built-in options", tc.BuiltinOptions)
	section("project options", tc.ProjectOptions)

	return sb.String()
}

// Write renders the native file into dir and returns its path
func (tc *Toolchain) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating generators folder: %w", err)
	}

	path := filepath.Join(dir, NativeFileName)
	if err := os.WriteFile(path, []byte(tc.Render()), 0644); err != nil {
		return "", fmt.Errorf("writing native file: %w", err)
	}

	return path, nil
}

func mesonBuildType(bt platform.BuildType) string {
	switch bt {
	case platform.BuildDebug:
		return "debug"
	case platform.BuildRelWithDebInfo:
		return "debugoptimized"
	case platform.BuildMinSizeRel:
		return "minsize"
	default:
		return "release"
	}
}

// cppStd converts a cppstd setting ("17", "gnu17") into a Meson value
func cppStd(s platform.Settings) string {
	std := strings.ToLower(s.Cppstd)
	if std == "" {
		return ""
	}
	if strings.HasPrefix(std, "gnu") {
		return "gnu++" + strings.TrimPrefix(std, "gnu")
	}
	if s.Compiler == platform.CompilerMSVC {
		return "vc++" + std
	}
	return "c++" + std
}
