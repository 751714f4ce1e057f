package apt

// Mode selects what the package manager does with missing packages
type Mode string

const (
	// ModeCheck fails when a required package is not installed
	ModeCheck Mode = "check"

	// ModeReport only logs the packages that would be installed
	ModeReport Mode = "report"

	// ModeInstall installs missing packages with apt-get
	ModeInstall Mode = "install"

	// DefaultMode is used when the conf leaves the mode unset
	DefaultMode = ModeCheck
)

const (
	aptGet    = "apt-get"
	dpkgQuery = "dpkg-query"
	sudo      = "sudo"
)

// ParseMode parses a package manager mode
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "":
		return DefaultMode, true
	case ModeCheck, ModeReport, ModeInstall:
		return Mode(s), true
	}
	return "", false
}
