package pipeline

import (
	"github.com/arc-language/spralpkg/pkg/meson"
	"github.com/arc-language/spralpkg/pkg/metadata"
	"github.com/arc-language/spralpkg/pkg/requirements"
)

// Inspection is everything the recipe decides before touching the
// filesystem
type Inspection struct {
	Ref              string                     `yaml:"ref"`
	Options          map[string]string          `yaml:"options"`
	Settings         map[string]string          `yaml:"settings"`
	Requirements     []requirements.Requirement `yaml:"requires"`
	ToolRequirements []requirements.Requirement `yaml:"tool_requires"`
	MesonOptions     map[string]string          `yaml:"meson_options"`
	Metadata         *metadata.PackageMetadata  `yaml:"package_info"`
}

// Inspect runs the side-effect free stages of r
func Inspect(r *Recipe) (*Inspection, error) {
	o := Configure(r.Options, r.Settings)
	if err := Validate(r.Settings); err != nil {
		return nil, err
	}

	return &Inspection{
		Ref:              r.Ref(),
		Options:          o.Values(),
		Settings:         r.Settings.Map(),
		Requirements:     requirements.Resolve(o, r.Settings),
		ToolRequirements: requirements.ToolRequirements(r.Conf),
		MesonOptions:     meson.BuildOptions(o).Strings(),
		Metadata:         metadata.Emit(o, r.Settings, r.Version),
	}, nil
}
