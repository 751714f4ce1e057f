package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/requirements"
)

// InfoFile is the metadata file every registry package folder carries
const InfoFile = "package_info.toml"

// Entry represents a single deps/<name>/<version>/package_info.toml file
type Entry struct {
	Name          string            `toml:"name" yaml:"name"`
	Version       string            `toml:"version" yaml:"version"`
	Description   string            `toml:"description,omitempty" yaml:"description,omitempty"`
	License       string            `toml:"license,omitempty" yaml:"license,omitempty"`
	Homepage      string            `toml:"homepage,omitempty" yaml:"homepage,omitempty"`
	PkgConfigName string            `toml:"pkg_config_name,omitempty" yaml:"pkg_config_name,omitempty"`
	Libs          []string          `toml:"libs" yaml:"libs"`
	SystemLibs    []string          `toml:"system_libs,omitempty" yaml:"system_libs,omitempty"`
	Requires      []string          `toml:"requires,omitempty" yaml:"requires,omitempty"`
	IncludeDirs   []string          `toml:"include_dirs,omitempty" yaml:"include_dirs,omitempty"`
	LibDirs       []string          `toml:"lib_dirs,omitempty" yaml:"lib_dirs,omitempty"`
	Defines       []string          `toml:"defines,omitempty" yaml:"defines,omitempty"`
	Options       map[string]string `toml:"options,omitempty" yaml:"options,omitempty"`
	Settings      map[string]string `toml:"settings,omitempty" yaml:"settings,omitempty"`

	// Root is the package folder the entry was loaded from
	Root string `toml:"-" yaml:"-"`
}

// Ref returns the name/version reference of the entry
func (e *Entry) Ref() string {
	return e.Name + "/" + e.Version
}

// PkgConfig returns the pkg-config module name, defaulting to the package name
func (e *Entry) PkgConfig() string {
	if e.PkgConfigName != "" {
		return e.PkgConfigName
	}
	return e.Name
}

// Registry provides lookup into the local deps/ folder holding packages the
// host already resolved and built
type Registry struct {
	depsDir string
}

// New creates a Registry rooted at depsDir
func New(depsDir string) *Registry {
	return &Registry{
		depsDir: depsDir,
	}
}

// Dir returns the registry root
func (r *Registry) Dir() string {
	return r.depsDir
}

// Versions lists the versions available for name
func (r *Registry) Versions(name string) ([]string, error) {
	if _, err := os.Stat(r.depsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("registry: deps folder %s not found", r.depsDir)
	}

	entries, err := os.ReadDir(filepath.Join(r.depsDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: registry has no package '%s'", core.ErrDependencyNotFound, name)
		}
		return nil, fmt.Errorf("registry: listing '%s': %w", name, err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// Resolve picks the highest registry version of req that satisfies its
// constraint and checks the entry was built with the options req demands.
// e.g. Resolve(metis/5.2.1 with_64bit_types=True) -> deps/metis/5.2.1
func (r *Registry) Resolve(req requirements.Requirement) (*Entry, error) {
	constraint, err := requirements.ParseConstraint(req.Constraint)
	if err != nil {
		return nil, fmt.Errorf("registry: %s: %w", req.Name, err)
	}

	versions, err := r.Versions(req.Name)
	if err != nil {
		return nil, err
	}

	version, ok := constraint.Best(versions)
	if !ok {
		return nil, fmt.Errorf("%w: no version of '%s' satisfies %s (available: %v)",
			core.ErrDependencyNotFound, req.Name, constraint, versions)
	}

	entry, err := r.Load(req.Name, version)
	if err != nil {
		return nil, err
	}

	for k, want := range req.Options {
		have, ok := entry.Options[k]
		if !ok {
			def, known := requirements.OptionDefault(req.Name, k)
			if !known {
				return nil, core.Configurationf("%s does not record %s but %s is required",
					entry.Ref(), k, want)
			}
			have = def
		}
		if !sameOption(have, want) {
			return nil, core.Configurationf("%s was built with %s=%s but %s is required",
				entry.Ref(), k, have, want)
		}
	}

	return entry, nil
}

// Load reads and parses deps/<name>/<version>/package_info.toml.
func (r *Registry) Load(name, version string) (*Entry, error) {
	dir := filepath.Join(r.depsDir, name, version)
	entry, err := LoadFile(filepath.Join(dir, InfoFile))
	if err != nil {
		// Check if the directory exists, to give a better error message.
		if _, statErr := os.Stat(dir); statErr == nil && errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("registry: found package '%s/%s' directory, but missing %s", name, version, InfoFile)
		}
		return nil, err
	}

	if entry.Name == "" {
		entry.Name = name
	}
	if entry.Version == "" {
		entry.Version = version
	}
	entry.Root = dir

	return entry, nil
}

// LoadFile parses a package_info.toml file
func LoadFile(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", core.ErrDependencyNotFound, path, err)
		}
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", path, err)
	}
	entry.Root = filepath.Dir(path)

	return &entry, nil
}

// WriteFile encodes entry as TOML into path
func WriteFile(path string, entry *Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("registry: creating %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("registry: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(entry); err != nil {
		return fmt.Errorf("registry: encoding %s: %w", path, err)
	}

	return f.Close()
}

// sameOption compares option values case-insensitively for booleans
func sameOption(a, b string) bool {
	return normalizeOption(a) == normalizeOption(b)
}

func normalizeOption(v string) string {
	switch v {
	case "True", "true", "1", "yes", "on":
		return "True"
	case "False", "false", "0", "no", "off":
		return "False"
	}
	return v
}
