package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates the requested configuration cannot be built
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUpstreamBuild indicates the wrapped build system failed
	ErrUpstreamBuild = errors.New("upstream build failure")

	// ErrInvalidOption indicates an unknown option or illegal option value
	ErrInvalidOption = errors.New("invalid option")

	// ErrDependencyNotFound indicates no registry entry satisfies a requirement
	ErrDependencyNotFound = errors.New("dependency not found")

	// ErrHashMismatch indicates a hash verification failure
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrPlatformNotSupported indicates the platform is not supported
	ErrPlatformNotSupported = errors.New("platform not supported")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package reference if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configurationf builds an error matching ErrConfiguration
func Configurationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Upstream marks err as a failure of the wrapped build system. The original
// error stays reachable through errors.Is/As.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: &upstreamError{err: err}}
}

type upstreamError struct {
	err error
}

func (e *upstreamError) Error() string { return e.err.Error() }

func (e *upstreamError) Unwrap() []error { return []error{ErrUpstreamBuild, e.err} }
