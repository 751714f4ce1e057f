package platform

import (
	"fmt"
	"runtime"
)

// Platform represents the detected host platform
type Platform struct {
	OS        string   // linux, darwin, windows, freebsd
	Arch      string   // amd64, arm64, 386, arm
	Available []string // Available system package tools
	Preferred string   // Preferred system package tool
}

// systemTools are probed in order of preference per OS
var systemTools = map[string][]string{
	"linux":   {"apt-get", "dnf", "yum", "pacman", "zypper", "apk"},
	"darwin":  {"brew"},
	"freebsd": {"pkg"},
	"windows": {"choco", "winget"},
}

// Detect detects the current platform and available system package tools
func Detect() (*Platform, error) {
	p := &Platform{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Available: []string{},
	}

	tools, ok := systemTools[p.OS]
	if !ok {
		return nil, fmt.Errorf("unsupported operating system: %s", p.OS)
	}

	for _, tool := range tools {
		if commandExists(tool) {
			p.Available = append(p.Available, tool)
		}
	}

	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p, nil
}

// Has reports whether tool was found on this host
func (p *Platform) Has(tool string) bool {
	return contains(p.Available, tool)
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v, preferred: %s)",
		p.OS, p.Arch, p.Available, p.Preferred)
}
