package apt

import (
	"fmt"
	"runtime"
)

// Architecture represents a Debian architecture
type Architecture string

const (
	ArchAmd64   Architecture = "amd64"   // x86_64
	ArchI386    Architecture = "i386"    // x86 32-bit
	ArchArm64   Architecture = "arm64"   // ARM 64-bit
	ArchArmhf   Architecture = "armhf"   // ARM hard float
	ArchArmel   Architecture = "armel"   // ARM soft float
	ArchPpc64el Architecture = "ppc64el" // PowerPC 64-bit little endian
	ArchS390x   Architecture = "s390x"   // IBM S/390
	ArchRiscv64 Architecture = "riscv64" // RISC-V 64-bit
)

// settingsArch maps profile arch names to Debian architectures
var settingsArch = map[string]Architecture{
	"x86_64":  ArchAmd64,
	"x86":     ArchI386,
	"armv8":   ArchArm64,
	"armv7hf": ArchArmhf,
	"armv7":   ArchArmel,
	"ppc64le": ArchPpc64el,
	"s390x":   ArchS390x,
	"riscv64": ArchRiscv64,
}

// FromSettings converts a profile arch name (x86_64, armv8, ...)
func FromSettings(arch string) (Architecture, error) {
	if a, ok := settingsArch[arch]; ok {
		return a, nil
	}
	return "", fmt.Errorf("no debian architecture for arch %q", arch)
}

// DetectArchitecture automatically detects the current architecture
func DetectArchitecture() (Architecture, error) {
	goos := runtime.GOOS
	goarch := runtime.GOARCH

	if goos != "linux" {
		return "", fmt.Errorf("apt only supports Linux, got: %s", goos)
	}

	switch goarch {
	case "amd64":
		return ArchAmd64, nil
	case "386":
		return ArchI386, nil
	case "arm64":
		return ArchArm64, nil
	case "arm":
		// Default to armhf for ARM 32-bit
		return ArchArmhf, nil
	case "ppc64le":
		return ArchPpc64el, nil
	case "s390x":
		return ArchS390x, nil
	case "riscv64":
		return ArchRiscv64, nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
}

// String returns the string representation of the architecture
func (a Architecture) String() string {
	return string(a)
}
