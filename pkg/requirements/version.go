package requirements

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Constraint is a parsed version constraint: an exact pin ("5.2.1") or a
// bracketed range ("[>=1.2.3 <2]")
type Constraint struct {
	raw string
	c   *semver.Constraints
}

// ParseConstraint parses a requirement version expression
func ParseConstraint(expr string) (*Constraint, error) {
	raw := strings.TrimSpace(expr)
	if raw == "" {
		return nil, fmt.Errorf("empty version constraint")
	}

	body := raw
	if strings.HasPrefix(body, "[") {
		if !strings.HasSuffix(body, "]") {
			return nil, fmt.Errorf("unterminated version range %q", raw)
		}
		body = normalizeRange(strings.TrimSuffix(strings.TrimPrefix(body, "["), "]"))
	} else {
		body = "=" + body
	}

	c, err := semver.NewConstraint(body)
	if err != nil {
		return nil, fmt.Errorf("parsing version constraint %q: %w", raw, err)
	}

	return &Constraint{raw: raw, c: c}, nil
}

// Check reports whether version satisfies the constraint
func (c *Constraint) Check(version string) (bool, error) {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return c.c.Check(v), nil
}

// Best returns the highest of versions satisfying the constraint. Versions
// that do not parse are ignored.
func (c *Constraint) Best(versions []string) (string, bool) {
	var best *semver.Version
	var bestRaw string
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil || !c.c.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}
	return bestRaw, best != nil
}

// String returns the constraint as written
func (c *Constraint) String() string {
	return c.raw
}

// normalizeRange turns a space separated range (">=1.2.3 <2", ">= 1.2 < 3")
// into the comma separated form the semver parser documents
func normalizeRange(body string) string {
	var b strings.Builder
	fields := strings.Fields(body)
	sep := ""
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if f == "||" {
			b.WriteString(" || ")
			sep = ""
			continue
		}
		if strings.Trim(f, "<>=!~^") == "" && i+1 < len(fields) {
			f += fields[i+1]
			i++
		}
		b.WriteString(sep)
		b.WriteString(f)
		sep = ", "
	}
	return b.String()
}
