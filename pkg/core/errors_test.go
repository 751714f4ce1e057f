package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpstream(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Upstream("meson compile", cause)

	assert.ErrorIs(t, err, ErrUpstreamBuild)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "meson compile: exit status 1", err.Error())

	assert.NoError(t, Upstream("meson compile", nil))
}

func TestConfigurationf(t *testing.T) {
	err := Configurationf("cppstd %s is too old", "98")
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "cppstd 98 is too old")
}

func TestError(t *testing.T) {
	err := &Error{Op: "validate", Package: "spral/2025.03.06", Err: ErrConfiguration}
	assert.Equal(t, "validate spral/2025.03.06: invalid configuration", err.Error())
	assert.ErrorIs(t, err, ErrConfiguration)

	var target *Error
	assert.True(t, errors.As(err, &target))
}
