package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
)

// PackageName is the reference name option scopes may target
const PackageName = "spral"

// Parse validates name -> value assignments into a Raw set. Names may carry a
// package scope ("spral:shared", "spral/*:shared", "*:shared").
func Parse(values map[string]string) (Raw, error) {
	var raw Raw

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	for _, scoped := range names {
		name, err := unscope(scoped)
		if err != nil {
			return Raw{}, err
		}
		if prev, ok := seen[name]; ok {
			return Raw{}, fmt.Errorf("%w: option %q given twice (%s and %s)",
				core.ErrInvalidOption, name, prev, scoped)
		}
		seen[name] = scoped

		if _, ok := Lookup(name); !ok {
			return Raw{}, fmt.Errorf("%w: unknown option %q", core.ErrInvalidOption, name)
		}

		b, err := ParseBool(values[scoped])
		if err != nil {
			return Raw{}, fmt.Errorf("option %s: %w", name, err)
		}

		switch Name(name) {
		case Shared:
			raw.Shared = &b
		case FPIC:
			raw.FPIC = &b
		case WithOpenMP:
			raw.WithOpenMP = &b
		case With64BitInt:
			raw.With64BitInt = &b
		}
	}

	return raw, nil
}

// ParseAssignments parses "name=value" strings as given on a command line
func ParseAssignments(assignments []string) (map[string]string, error) {
	values := make(map[string]string, len(assignments))
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: expected name=value, got %q", core.ErrInvalidOption, a)
		}
		values[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return values, nil
}

func unscope(name string) (string, error) {
	scope, rest, ok := strings.Cut(name, ":")
	if !ok {
		return strings.TrimSpace(name), nil
	}

	switch strings.TrimSpace(scope) {
	case "*", PackageName, PackageName + "/*":
		return strings.TrimSpace(rest), nil
	default:
		return "", fmt.Errorf("%w: option %q is scoped to another package", core.ErrInvalidOption, name)
	}
}
