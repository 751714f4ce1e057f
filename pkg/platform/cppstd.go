package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arc-language/spralpkg/pkg/core"
)

// DefaultCppstd returns the C++ standard a compiler uses when none is given
func DefaultCppstd(c Compiler, version string) string {
	major := majorVersion(version)
	if major < 0 {
		// unknown version, assume a current release
		major = 99
	}
	switch c {
	case CompilerGCC:
		switch {
		case major >= 11:
			return "gnu17"
		case major >= 6:
			return "gnu14"
		default:
			return "gnu98"
		}
	case CompilerClang:
		switch {
		case major >= 16:
			return "gnu17"
		case major >= 6:
			return "gnu14"
		default:
			return "gnu98"
		}
	case CompilerAppleClang:
		if major >= 11 {
			return "gnu17"
		}
		return "gnu98"
	case CompilerMSVC:
		return "14"
	case CompilerIntel:
		return "17"
	}
	return ""
}

// cppstdYear maps a cppstd value (with or without the gnu prefix) to a
// comparable year, so 98 sorts before 11
func cppstdYear(std string) (int, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(std)), "gnu")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 99 {
		return 0, fmt.Errorf("invalid cppstd: %q", std)
	}
	if n >= 98 {
		return 1900 + n, nil
	}
	return 2000 + n, nil
}

// CheckMinCppstd fails with a configuration error when the settings select a
// C++ standard older than minimum, or none at all
func CheckMinCppstd(s Settings, minimum string) error {
	want, err := cppstdYear(minimum)
	if err != nil {
		return err
	}

	if s.Cppstd == "" {
		return core.Configurationf("the compiler.cppstd is not defined for this configuration")
	}

	have, err := cppstdYear(s.Cppstd)
	if err != nil {
		return core.Configurationf("%v", err)
	}

	if have < want {
		return core.Configurationf("current cppstd (%s) is lower than the required C++ standard (%s)", s.Cppstd, minimum)
	}

	return nil
}
