package core

import (
	"strconv"
	"strings"
)

// Well-known conf keys honoured by the recipe stages
const (
	ConfPkgConfig    = "tools.gnu:pkg_config"
	ConfSystemPMMode = "tools.system.package_manager:mode"
	ConfSystemPMSudo = "tools.system.package_manager:sudo"
	ConfMesonBinary  = "tools.meson:binary"
	ConfBuildJobs    = "tools.build:jobs"
	ConfPatchBinary  = "tools.files:patch"
	ConfInstallName  = "tools.apple:install_name_tool"
)

// Conf is the free-form key/value configuration passed to stages
type Conf map[string]string

// Get returns the value for key or def when unset or blank
func (c Conf) Get(key, def string) string {
	if v, ok := c[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// Bool returns the boolean value for key or def when unset or unparsable
func (c Conf) Bool(key string, def bool) bool {
	v, ok := c[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// Int returns the integer value for key or def when unset or unparsable
func (c Conf) Int(key string, def int) int {
	v, ok := c[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}
