package platform

import (
	"fmt"
	"sort"
	"strings"
)

// OS is the target operating system setting
type OS string

// Supported target operating systems
const (
	OSLinux   OS = "Linux"
	OSFreeBSD OS = "FreeBSD"
	OSMacos   OS = "Macos"
	OSWindows OS = "Windows"
	OSAndroid OS = "Android"
)

// ParseOS parses a target OS name, case-insensitively
func ParseOS(s string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux":
		return OSLinux, nil
	case "freebsd":
		return OSFreeBSD, nil
	case "macos", "darwin", "osx":
		return OSMacos, nil
	case "windows", "win32":
		return OSWindows, nil
	case "android":
		return OSAndroid, nil
	default:
		return "", fmt.Errorf("invalid os: %q", s)
	}
}

// Compiler is the compiler family setting
type Compiler string

// Supported compiler families
const (
	CompilerGCC        Compiler = "gcc"
	CompilerClang      Compiler = "clang"
	CompilerAppleClang Compiler = "apple-clang"
	CompilerMSVC       Compiler = "msvc"
	CompilerIntel      Compiler = "intel-cc"
)

// ParseCompiler parses a compiler family name, case-insensitively
func ParseCompiler(s string) (Compiler, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gcc", "gnu", "g++":
		return CompilerGCC, nil
	case "clang", "clang++", "llvm":
		return CompilerClang, nil
	case "apple-clang", "appleclang":
		return CompilerAppleClang, nil
	case "msvc", "cl", "visual studio":
		return CompilerMSVC, nil
	case "intel-cc", "icx", "icc":
		return CompilerIntel, nil
	default:
		return "", fmt.Errorf("invalid compiler: %q", s)
	}
}

// BuildType is the build configuration setting
type BuildType string

// Supported build types
const (
	BuildRelease        BuildType = "Release"
	BuildDebug          BuildType = "Debug"
	BuildRelWithDebInfo BuildType = "RelWithDebInfo"
	BuildMinSizeRel     BuildType = "MinSizeRel"
)

// ParseBuildType parses a build type, case-insensitively
func ParseBuildType(s string) (BuildType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "release":
		return BuildRelease, nil
	case "debug":
		return BuildDebug, nil
	case "relwithdebinfo":
		return BuildRelWithDebInfo, nil
	case "minsizerel":
		return BuildMinSizeRel, nil
	default:
		return "", fmt.Errorf("invalid build_type: %q", s)
	}
}

// Setting keys accepted by FromMap
const (
	KeyOS              = "os"
	KeyArch            = "arch"
	KeyCompiler        = "compiler"
	KeyCompilerVersion = "compiler.version"
	KeyCppstd          = "compiler.cppstd"
	KeyBuildType       = "build_type"
)

// Settings describe the target platform a package is built for
type Settings struct {
	OS              OS        `yaml:"os" toml:"os"`
	Arch            string    `yaml:"arch" toml:"arch"`
	Compiler        Compiler  `yaml:"compiler" toml:"compiler"`
	CompilerVersion string    `yaml:"compiler_version" toml:"compiler_version"`
	Cppstd          string    `yaml:"cppstd,omitempty" toml:"cppstd,omitempty"`
	BuildType       BuildType `yaml:"build_type" toml:"build_type"`
}

// IsGCC reports whether the compiler is the GNU family, which ships its own
// OpenMP runtime (libgomp) as a system library
func (s Settings) IsGCC() bool {
	return s.Compiler == CompilerGCC
}

// IsWindows reports whether the target is Windows
func (s Settings) IsWindows() bool {
	return s.OS == OSWindows
}

// IsUnixLike reports whether the target links against the ELF system
// libraries (libm, libmvec, libudev, ...)
func (s Settings) IsUnixLike() bool {
	return s.OS == OSLinux || s.OS == OSFreeBSD
}

// With returns a copy of s with the given key/value settings applied
func (s Settings) With(values map[string]string) (Settings, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := values[k]
		switch k {
		case KeyOS:
			os, err := ParseOS(v)
			if err != nil {
				return s, err
			}
			s.OS = os
		case KeyArch:
			arch, err := ParseArch(v)
			if err != nil {
				return s, err
			}
			s.Arch = arch
		case KeyCompiler:
			c, err := ParseCompiler(v)
			if err != nil {
				return s, err
			}
			s.Compiler = c
		case KeyCompilerVersion:
			s.CompilerVersion = strings.TrimSpace(v)
		case KeyCppstd:
			s.Cppstd = strings.ToLower(strings.TrimSpace(v))
		case KeyBuildType:
			bt, err := ParseBuildType(v)
			if err != nil {
				return s, err
			}
			s.BuildType = bt
		default:
			return s, fmt.Errorf("unknown setting: %q", k)
		}
	}

	return s, nil
}

// Map returns the settings as profile key/value pairs
func (s Settings) Map() map[string]string {
	m := map[string]string{
		KeyOS:        string(s.OS),
		KeyArch:      s.Arch,
		KeyCompiler:  string(s.Compiler),
		KeyBuildType: string(s.BuildType),
	}
	if s.CompilerVersion != "" {
		m[KeyCompilerVersion] = s.CompilerVersion
	}
	if s.Cppstd != "" {
		m[KeyCppstd] = s.Cppstd
	}
	return m
}

// String returns a compact representation of the settings
func (s Settings) String() string {
	return fmt.Sprintf("%s/%s %s-%s cppstd=%s %s",
		s.OS, s.Arch, s.Compiler, s.CompilerVersion, s.Cppstd, s.BuildType)
}

// archAliases maps Go and common spellings to profile arch names
var archAliases = map[string]string{
	"x86_64":  "x86_64",
	"amd64":   "x86_64",
	"x86":     "x86",
	"386":     "x86",
	"i386":    "x86",
	"i686":    "x86",
	"armv8":   "armv8",
	"arm64":   "armv8",
	"aarch64": "armv8",
	"armv7":   "armv7",
	"arm":     "armv7",
	"armv7hf": "armv7hf",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
	"riscv64": "riscv64",
}

// ParseArch normalizes an architecture name
func ParseArch(s string) (string, error) {
	if arch, ok := archAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return arch, nil
	}
	return "", fmt.Errorf("invalid arch: %q", s)
}
