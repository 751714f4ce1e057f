// Package env knows the layout of an installed package folder: where its
// libraries, headers and licenses live for a given target OS.
package env

import "github.com/arc-language/spralpkg/pkg/platform"

// PackageLayout defines where files are located within a package folder
type PackageLayout struct {
	Libraries []string // Relative paths to library directories
	Includes  []string // Relative paths to include directories
	PkgConfig []string // Relative paths to pkg-config directories
	Binaries  []string // Relative paths to binary directories
	Licenses  string   // Relative path of the license directory
}

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "spral")
	Path     string // Absolute path to library file
	Type     string // Extension: ".so", ".a", ".dylib", ".dll", ".lib"
	IsStatic bool   // True for .a and .lib files
}

// Environment is a package folder laid out for one target OS
type Environment struct {
	Root   string      // Package folder (meson install --destdir)
	Target platform.OS // Target OS, which decides library naming
}

// New creates an Environment rooted at root
func New(root string, target platform.OS) *Environment {
	return &Environment{Root: root, Target: target}
}
