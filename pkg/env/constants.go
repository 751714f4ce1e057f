package env

import (
	"path/filepath"

	"github.com/arc-language/spralpkg/pkg/platform"
)

// LicenseNames are the file names upstream projects use for their license
var LicenseNames = []string{"LICENSE", "LICENCE", "COPYING", "LICENSE.txt", "LICENCE.txt"}

// GetPackageLayout returns the package folder structure for a target OS.
// These are RELATIVE paths within the package folder.
func GetPackageLayout(target platform.OS) PackageLayout {
	switch target {
	case platform.OSWindows:
		return getWindowsLayout()
	default:
		return getDefaultLayout()
	}
}

// Meson installs with prefix=/ and libdir=lib, so the package folder
// holds lib/, include/ and bin/ directly
func getDefaultLayout() PackageLayout {
	return PackageLayout{
		Libraries: []string{"lib"},
		Includes:  []string{"include"},
		PkgConfig: []string{filepath.Join("lib", "pkgconfig")},
		Binaries:  []string{"bin"},
		Licenses:  "licenses",
	}
}

// DLLs land in bin/, import libraries in lib/
func getWindowsLayout() PackageLayout {
	return PackageLayout{
		Libraries: []string{"lib", "bin"},
		Includes:  []string{"include"},
		PkgConfig: []string{filepath.Join("lib", "pkgconfig")},
		Binaries:  []string{"bin"},
		Licenses:  "licenses",
	}
}

// GetLibraryExtensions returns library file extensions for the target OS
func GetLibraryExtensions(target platform.OS) []string {
	return append(GetSharedLibraryExtensions(target), GetStaticLibraryExtensions(target)...)
}

// GetSharedLibraryExtensions returns only shared library extensions
func GetSharedLibraryExtensions(target platform.OS) []string {
	switch target {
	case platform.OSMacos:
		return []string{".dylib"}
	case platform.OSWindows:
		return []string{".dll"}
	default:
		return []string{".so"}
	}
}

// GetStaticLibraryExtensions returns only static library extensions
func GetStaticLibraryExtensions(target platform.OS) []string {
	switch target {
	case platform.OSWindows:
		return []string{".lib"} // Can be import lib or static lib
	default:
		return []string{".a"}
	}
}
