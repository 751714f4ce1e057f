package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// goosNames maps runtime.GOOS to the target OS setting
var goosNames = map[string]OS{
	"linux":   OSLinux,
	"freebsd": OSFreeBSD,
	"darwin":  OSMacos,
	"windows": OSWindows,
	"android": OSAndroid,
}

// ResolveSettings builds the target settings for a run.
//
// Priority:
// 1. Values given explicitly in overrides (profile or command line)
// 2. Values detected from the host platform and compiler
func ResolveSettings(ctx context.Context, p *Platform, overrides map[string]string) (Settings, error) {
	var s Settings

	hostOS, ok := goosNames[p.OS]
	if !ok {
		return s, fmt.Errorf("unsupported operating system: %s", p.OS)
	}
	s.OS = hostOS

	arch, err := ParseArch(p.Arch)
	if err != nil {
		return s, err
	}
	s.Arch = arch
	s.BuildType = BuildRelease

	// Compiler detection is skipped when the profile pins it
	if _, pinned := overrides[KeyCompiler]; !pinned {
		compiler, version := DetectCompiler(ctx, s.OS)
		s.Compiler = compiler
		s.CompilerVersion = version
	}

	s, err = s.With(overrides)
	if err != nil {
		return s, fmt.Errorf("applying settings: %w", err)
	}

	if s.Compiler == "" {
		return s, fmt.Errorf("no compiler detected, set %q explicitly", KeyCompiler)
	}
	if _, pinned := overrides[KeyCppstd]; !pinned && s.Cppstd == "" {
		s.Cppstd = DefaultCppstd(s.Compiler, s.CompilerVersion)
	}

	return s, nil
}

// DetectCompiler finds the host C compiler. CC wins over PATH probing.
func DetectCompiler(ctx context.Context, target OS) (Compiler, string) {
	candidates := []string{"gcc", "clang", "cc"}
	if target == OSWindows {
		candidates = []string{"cl", "clang", "gcc"}
	}
	if cc := os.Getenv("CC"); cc != "" {
		candidates = append([]string{cc}, candidates...)
	}

	for _, cc := range candidates {
		if !commandExists(cc) {
			continue
		}
		if compiler, version, ok := identifyCompiler(ctx, cc, target); ok {
			return compiler, version
		}
	}

	return "", ""
}

// identifyCompiler classifies a compiler executable by its banner
func identifyCompiler(ctx context.Context, cc string, target OS) (Compiler, string, bool) {
	base := strings.TrimSuffix(filepath.Base(cc), ".exe")
	if base == "cl" {
		// cl prints its banner on stderr and has no -dumpversion
		return CompilerMSVC, "", true
	}

	banner, err := commandOutput(ctx, cc, "--version")
	if err != nil {
		return "", "", false
	}
	version, err := commandOutput(ctx, cc, "-dumpversion")
	if err != nil {
		version = ""
	}

	lower := strings.ToLower(banner)
	switch {
	case strings.Contains(lower, "apple clang") || (strings.Contains(lower, "clang") && target == OSMacos):
		return CompilerAppleClang, version, true
	case strings.Contains(lower, "clang"):
		return CompilerClang, version, true
	case strings.Contains(lower, "intel"):
		return CompilerIntel, version, true
	case strings.Contains(lower, "gcc") || strings.Contains(lower, "free software foundation"):
		return CompilerGCC, version, true
	default:
		return "", "", false
	}
}
