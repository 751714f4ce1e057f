// Package options declares the recipe's user-facing options and normalizes
// raw assignments into an immutable OptionSet.
package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
)

// Name is a declared option name
type Name string

// Declared options
const (
	Shared       Name = "shared"
	FPIC         Name = "fPIC"
	WithOpenMP   Name = "with_openmp"
	With64BitInt Name = "with_64bit_int"
)

// Declaration describes one option, its legal values and default
type Declaration struct {
	Name        Name
	Default     bool
	Description string
}

// Values returns the legal values of a boolean option
func (d Declaration) Values() []string {
	return []string{"True", "False"}
}

// Declarations lists every option in declaration order
var Declarations = []Declaration{
	{Name: Shared, Default: false, Description: "build a shared library instead of a static archive"},
	{Name: FPIC, Default: true, Description: "compile position independent code (static builds only)"},
	{Name: WithOpenMP, Default: true, Description: "enable OpenMP parallelism"},
	{Name: With64BitInt, Default: false, Description: "use 64-bit integers for METIS indices"},
}

// Lookup returns the declaration for name
func Lookup(name string) (Declaration, bool) {
	for _, d := range Declarations {
		if string(d.Name) == name {
			return d, true
		}
	}
	return Declaration{}, false
}

// Raw holds caller supplied option values. Nil fields take the default.
type Raw struct {
	Shared       *bool
	FPIC         *bool
	WithOpenMP   *bool
	With64BitInt *bool
}

// OptionSet is the normalized, read-only option configuration of one run
type OptionSet struct {
	shared       bool
	fpic         bool
	hasFPIC      bool
	withOpenMP   bool
	with64BitInt bool
}

// Normalize applies defaults to raw and drops fPIC for shared builds, where
// it has no meaning
func Normalize(raw Raw) OptionSet {
	o := OptionSet{
		shared:       deref(raw.Shared, false),
		fpic:         deref(raw.FPIC, true),
		hasFPIC:      true,
		withOpenMP:   deref(raw.WithOpenMP, true),
		with64BitInt: deref(raw.With64BitInt, false),
	}
	if o.shared {
		o = o.WithoutFPIC()
	}
	return o
}

// Defaults returns the option set with every option at its default
func Defaults() OptionSet {
	return Normalize(Raw{})
}

// WithoutFPIC returns a copy with the fPIC option removed
func (o OptionSet) WithoutFPIC() OptionSet {
	o.fpic = false
	o.hasFPIC = false
	return o
}

// Shared reports whether a shared library is built
func (o OptionSet) Shared() bool { return o.shared }

// FPIC returns the fPIC value and whether the option exists at all
func (o OptionSet) FPIC() (value bool, ok bool) { return o.fpic, o.hasFPIC }

// WithOpenMP reports whether OpenMP is enabled
func (o OptionSet) WithOpenMP() bool { return o.withOpenMP }

// With64BitInt reports whether 64-bit METIS indices are used
func (o OptionSet) With64BitInt() bool { return o.with64BitInt }

// Has reports whether the option is part of the set
func (o OptionSet) Has(name Name) bool {
	if name == FPIC {
		return o.hasFPIC
	}
	_, ok := Lookup(string(name))
	return ok
}

// Values returns the effective options as name -> "True"/"False"
func (o OptionSet) Values() map[string]string {
	v := map[string]string{
		string(Shared):       FormatBool(o.shared),
		string(WithOpenMP):   FormatBool(o.withOpenMP),
		string(With64BitInt): FormatBool(o.with64BitInt),
	}
	if o.hasFPIC {
		v[string(FPIC)] = FormatBool(o.fpic)
	}
	return v
}

// String renders the set as sorted name=value pairs
func (o OptionSet) String() string {
	values := o.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+values[k])
	}
	return strings.Join(parts, " ")
}

// FormatBool renders a boolean the way option values are written
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBool parses an option value
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not one of [True, False]", core.ErrInvalidOption, s)
	}
}

func deref(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}
