// Package metadata describes the packaged SPRAL library to its consumers.
package metadata

import (
	"path/filepath"

	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
	"github.com/arc-language/spralpkg/pkg/registry"
	"github.com/arc-language/spralpkg/pkg/requirements"
)

const (
	Name          = "spral"
	Description   = "Sparse Parallel Robust Algorithms Library"
	License       = "BSD-3-Clause"
	Homepage      = "https://ralna.github.io/spral/"
	PkgConfigName = "spral"
)

// PackageMetadata is what consumers link against. It shares the
// package_info.toml schema of the dependency registry, so a packaged
// SPRAL can be dropped into a deps folder as-is.
type PackageMetadata = registry.Entry

// unixSystemLibs are linked on Linux and FreeBSD. The Fortran runtime comes
// from the system toolchain.
var unixSystemLibs = []string{"m", "mvec", "udev", "gfortran", "quadmath"}

// Emit derives the package metadata for an option set and target settings
func Emit(o options.OptionSet, s platform.Settings, version string) *PackageMetadata {
	md := &PackageMetadata{
		Name:          Name,
		Version:       version,
		Description:   Description,
		License:       License,
		Homepage:      Homepage,
		PkgConfigName: PkgConfigName,
		Libs:          []string{Name},
		IncludeDirs:   []string{"include"},
		LibDirs:       []string{"lib"},
		Requires:      Requires(o, s),
		Options:       o.Values(),
		Settings:      s.Map(),
	}

	if s.IsUnixLike() {
		md.SystemLibs = append(md.SystemLibs, unixSystemLibs...)
	}
	// gcc ships its own OpenMP runtime on every target
	if o.WithOpenMP() && s.IsGCC() {
		md.SystemLibs = append(md.SystemLibs, "gomp")
	}

	return md
}

// Requires lists the component requirements of the spral library
func Requires(o options.OptionSet, s platform.Settings) []string {
	reqs := []string{"openblas::openblas", "metis::metis", "hwloc::hwloc"}
	if requirements.NeedsOpenMPPackage(o, s) {
		reqs = append(reqs, "llvm-openmp::llvm-openmp")
	}
	return reqs
}

// Write stores md as <packageDir>/package_info.toml
func Write(packageDir string, md *PackageMetadata) (string, error) {
	path := filepath.Join(packageDir, registry.InfoFile)
	if err := registry.WriteFile(path, md); err != nil {
		return "", err
	}
	return path, nil
}

// Read loads the metadata of a package folder
func Read(packageDir string) (*PackageMetadata, error) {
	return registry.LoadFile(filepath.Join(packageDir, registry.InfoFile))
}
