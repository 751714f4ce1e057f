// Package pipeline runs the SPRAL recipe as an ordered list of named
// lifecycle stages.
package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
)

// Paths are the folders a run works in
type Paths struct {
	Deps       string // dependency registry root
	Source     string // unpacked and patched upstream sources
	Build      string // meson build directory
	Generators string // pkg-config files and the native file
	Package    string // install destination
	Cache      string // download cache
}

// NewPaths lays out the run folders for version under workspace
func NewPaths(workspace, packageDir, depsDir, version string) Paths {
	root := filepath.Join(workspace, "spral", version)
	return Paths{
		Deps:       depsDir,
		Source:     filepath.Join(root, "src"),
		Build:      filepath.Join(root, "build"),
		Generators: filepath.Join(root, "build", "generators"),
		Package:    packageDir,
		Cache:      filepath.Join(workspace, "downloads"),
	}
}

// Recipe is the immutable configuration of one run
type Recipe struct {
	Version  string
	Options  options.OptionSet
	Settings platform.Settings
	Conf     core.Conf
	Paths    Paths
}

// NewRecipe parses raw option assignments and builds the run configuration
func NewRecipe(version string, rawOptions map[string]string, s platform.Settings, conf core.Conf, paths Paths) (*Recipe, error) {
	raw, err := options.Parse(rawOptions)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, fmt.Errorf("recipe version is required")
	}
	if conf == nil {
		conf = core.Conf{}
	}

	return &Recipe{
		Version:  version,
		Options:  options.Normalize(raw),
		Settings: s,
		Conf:     conf,
		Paths:    paths,
	}, nil
}

// Ref returns the package reference of the recipe
func (r *Recipe) Ref() string {
	return "spral/" + r.Version
}
