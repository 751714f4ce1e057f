// Package meson maps recipe options onto the wrapped Meson project and drives
// its configure, build and install steps.
package meson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arc-language/spralpkg/pkg/options"
)

// Provider packages fixed by the recipe; they are not user selectable
const (
	ProviderBLAS         = "openblas"
	ProviderLAPACK       = "openblas"
	ProviderHwloc        = "hwloc"
	ProviderMetis        = "metis"
	ProviderMetisVersion = "5"
)

// OptionMap holds Meson project options. Values are bool or string.
type OptionMap map[string]any

// BuildOptions derives the project options for o. It is a pure function of
// its argument.
func BuildOptions(o options.OptionSet) OptionMap {
	return OptionMap{
		"modules":  true,
		"examples": false,
		"tests":    false,
		"gpu":      false,

		"metis64": o.With64BitInt(),
		"openmp":  o.WithOpenMP(),

		"libmetis_version": ProviderMetisVersion,
		"libblas":          ProviderBLAS,
		"liblapack":        ProviderLAPACK,
		"libhwloc":         ProviderHwloc,
		"libmetis":         ProviderMetis,
	}
}

// Keys returns the option names in sorted order
func (m OptionMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Args renders the map as -Dkey=value command line arguments
func (m OptionMap) Args() []string {
	args := make([]string, 0, len(m))
	for _, k := range m.Keys() {
		args = append(args, fmt.Sprintf("-D%s=%s", k, plain(m[k])))
	}
	return args
}

// Strings renders every value in its command line form
func (m OptionMap) Strings() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = plain(v)
	}
	return out
}

// literal renders v as a Meson machine-file literal
func literal(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", t)
	case []string:
		quoted := make([]string, 0, len(t))
		for _, s := range t {
			quoted = append(quoted, quote(s))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return quote(fmt.Sprint(t))
	}
}

// plain renders v the way meson accepts it after -D
func plain(v any) string {
	switch t := v.(type) {
	case bool:
		return literal(t)
	case []string:
		return strings.Join(t, ",")
	default:
		return fmt.Sprint(t)
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
