// Package source fetches, unpacks and patches the upstream sources.
package source

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

//go:embed conandata.yml
var defaultData []byte

// Source locates the upstream sources of one version: either an archive
// (URL + SHA-256) or a git repository pinned to a tag or commit
type Source struct {
	URL    URLList `yaml:"url,omitempty"`
	SHA256 string  `yaml:"sha256,omitempty"`
	Git    string  `yaml:"git,omitempty"`
	Tag    string  `yaml:"tag,omitempty"`
	Commit string  `yaml:"commit,omitempty"`
}

// IsGit reports whether the source is a git checkout
func (s Source) IsGit() bool {
	return s.Git != ""
}

// Validate checks the source is complete
func (s Source) Validate() error {
	switch {
	case s.IsGit() && s.Tag == "" && s.Commit == "":
		return fmt.Errorf("git source %s needs a tag or commit", s.Git)
	case !s.IsGit() && len(s.URL) == 0:
		return fmt.Errorf("source needs a url or git repository")
	case !s.IsGit() && s.SHA256 == "":
		return fmt.Errorf("archive source %s needs a sha256", s.URL[0])
	}
	return nil
}

// URLList accepts a single URL or a list of mirrors
type URLList []string

// UnmarshalYAML decodes a scalar or a sequence
func (u *URLList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*u = URLList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*u = list
		return nil
	default:
		return fmt.Errorf("url: expected string or list, got %v", value.Tag)
	}
}

// Patch is one patch file applied after fetching
type Patch struct {
	File        string `yaml:"patch_file"`
	Description string `yaml:"patch_description,omitempty"`
	Type        string `yaml:"patch_type,omitempty"`
}

// Data is the parsed conandata.yml
type Data struct {
	Sources map[string]Source  `yaml:"sources"`
	Patches map[string][]Patch `yaml:"patches"`

	// dir is where patch files are resolved from
	dir string
}

// LoadData reads a conandata file. An empty path loads the built-in data.
func LoadData(path string) (*Data, error) {
	raw := defaultData
	dir := ""
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading conandata: %w", err)
		}
		raw = b
		dir = filepath.Dir(path)
	}

	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing conandata: %w", err)
	}
	if len(d.Sources) == 0 {
		return nil, fmt.Errorf("conandata has no sources")
	}
	d.dir = dir

	return &d, nil
}

// Versions returns the versions with sources, newest first
func (d *Data) Versions() []string {
	versions := make([]string, 0, len(d.Sources))
	for v := range d.Sources {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool {
		a, errA := semver.NewVersion(versions[i])
		b, errB := semver.NewVersion(versions[j])
		if errA != nil || errB != nil {
			return versions[i] > versions[j]
		}
		return a.GreaterThan(b)
	})
	return versions
}

// Latest returns the newest version
func (d *Data) Latest() string {
	return d.Versions()[0]
}

// Source returns the source of version
func (d *Data) Source(version string) (Source, error) {
	s, ok := d.Sources[version]
	if !ok {
		return Source{}, fmt.Errorf("no sources for version %q (available: %v)", version, d.Versions())
	}
	if err := s.Validate(); err != nil {
		return Source{}, fmt.Errorf("version %s: %w", version, err)
	}
	return s, nil
}

// PatchFiles returns the absolute patch paths for version
func (d *Data) PatchFiles(version string) []Patch {
	patches := d.Patches[version]
	out := make([]Patch, 0, len(patches))
	for _, p := range patches {
		if !filepath.IsAbs(p.File) && d.dir != "" {
			p.File = filepath.Join(d.dir, p.File)
		}
		out = append(out, p)
	}
	return out
}
