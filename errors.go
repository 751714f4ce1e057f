// errors.go
package spralpkg

import "github.com/arc-language/spralpkg/pkg/core"

var (
	// ErrConfiguration indicates the requested configuration cannot be built
	// (for example the C++ standard is below the required minimum)
	ErrConfiguration = core.ErrConfiguration

	// ErrUpstreamBuild indicates the wrapped Meson build or install failed
	ErrUpstreamBuild = core.ErrUpstreamBuild

	// ErrInvalidOption indicates an unknown option name or an illegal value
	ErrInvalidOption = core.ErrInvalidOption

	// ErrDependencyNotFound indicates no registry entry satisfies a requirement
	ErrDependencyNotFound = core.ErrDependencyNotFound

	// ErrHashMismatch indicates a source archive checksum failure
	ErrHashMismatch = core.ErrHashMismatch

	// ErrPlatformNotSupported indicates the host platform is not supported
	ErrPlatformNotSupported = core.ErrPlatformNotSupported
)

// Error wraps an error with the stage and package it came from
type Error = core.Error
