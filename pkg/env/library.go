package env

import (
	"os"
	"path/filepath"
	"strings"
)

// GetLibraryPaths returns the absolute library directories of the package
func (e *Environment) GetLibraryPaths() []string {
	return e.join(GetPackageLayout(e.Target).Libraries)
}

// GetIncludePaths returns the absolute include directories of the package
func (e *Environment) GetIncludePaths() []string {
	return e.join(GetPackageLayout(e.Target).Includes)
}

// LicenseDir returns the absolute license directory of the package
func (e *Environment) LicenseDir() string {
	return filepath.Join(e.Root, GetPackageLayout(e.Target).Licenses)
}

// FindLibrary searches for a specific library by name.
// Returns the first match found in library search paths
func (e *Environment) FindLibrary(name string) *Library {
	for _, dir := range e.GetLibraryPaths() {
		for _, ext := range GetLibraryExtensions(e.Target) {
			for _, filename := range libraryFileNames(name, ext) {
				fullPath := filepath.Join(dir, filename)
				if fileExists(fullPath) {
					return newLibrary(name, fullPath, ext)
				}

				// Try versioned: lib{name}{ext}.* (e.g., libspral.so.1)
				matches, _ := filepath.Glob(filepath.Join(dir, filename+".*"))
				if len(matches) > 0 {
					return newLibrary(name, matches[0], ext)
				}
			}
		}
	}

	return nil
}

// FindAllSharedLibraries returns every shared library file in the package,
// symlinks excluded
func (e *Environment) FindAllSharedLibraries() []*Library {
	var libraries []*Library
	seen := make(map[string]bool)

	for _, dir := range e.GetLibraryPaths() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}

			name := entry.Name()
			for _, ext := range GetSharedLibraryExtensions(e.Target) {
				if !strings.HasSuffix(name, ext) && !strings.Contains(name, ext+".") {
					continue
				}

				fullPath := filepath.Join(dir, name)
				if seen[fullPath] {
					continue
				}
				seen[fullPath] = true

				libraries = append(libraries, newLibrary(libraryName(name), fullPath, ext))
				break
			}
		}
	}

	return libraries
}

// HasLibrary checks if a library exists in the package
func (e *Environment) HasLibrary(name string) bool {
	return e.FindLibrary(name) != nil
}

func (e *Environment) join(rel []string) []string {
	paths := make([]string, 0, len(rel))
	for _, r := range rel {
		paths = append(paths, filepath.Join(e.Root, r))
	}
	return paths
}

// libraryFileNames lists the candidate file names of a library. MSVC
// builds drop the lib prefix.
func libraryFileNames(name, ext string) []string {
	if ext == ".dll" || ext == ".lib" {
		return []string{name + ext, "lib" + name + ext}
	}
	return []string{"lib" + name + ext}
}

// libraryName strips the lib prefix, extension and version
func libraryName(file string) string {
	name := strings.TrimPrefix(file, "lib")
	return strings.Split(name, ".")[0]
}

func newLibrary(name, path, ext string) *Library {
	return &Library{
		Name:     name,
		Path:     path,
		Type:     ext,
		IsStatic: ext == ".a" || ext == ".lib",
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
