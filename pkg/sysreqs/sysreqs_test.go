package sysreqs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/spralpkg/internal/testutil"
	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/options"
	"github.com/arc-language/spralpkg/pkg/platform"
)

func boolPtr(b bool) *bool { return &b }

var gcc = platform.Settings{OS: platform.OSLinux, Arch: "x86_64", Compiler: platform.CompilerGCC}

func TestPackages(t *testing.T) {
	assert.Equal(t, []string{"libgfortran5", "libquadmath0", "libgomp1"}, Packages(options.Defaults(), gcc))

	noOMP := options.Normalize(options.Raw{WithOpenMP: boolPtr(false)})
	assert.Equal(t, []string{"libgfortran5", "libquadmath0"}, Packages(noOMP, gcc))

	clang := gcc
	clang.Compiler = platform.CompilerClang
	assert.Empty(t, Packages(options.Defaults(), clang))
}

func TestEnsure_Skipped(t *testing.T) {
	tests := []struct {
		name   string
		host   *platform.Platform
		s      platform.Settings
		reason string
	}{
		{name: "darwin host", host: &platform.Platform{OS: "darwin", Available: []string{"brew"}}, s: gcc, reason: "host is not Linux"},
		{name: "no apt-get", host: &platform.Platform{OS: "linux", Available: []string{"dnf"}}, s: gcc, reason: "apt-get not available"},
		{name: "clang", host: &platform.Platform{OS: "linux", Available: []string{"apt-get"}},
			s: platform.Settings{OS: platform.OSLinux, Compiler: platform.CompilerClang}, reason: "no system packages required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &testutil.RecordingRunner{}
			res, err := Ensure(context.Background(), runner, tt.host, core.Conf{}, options.Defaults(), tt.s)
			require.NoError(t, err)
			assert.Equal(t, tt.reason, res.Skipped)
			assert.Empty(t, runner.Commands)
		})
	}
}

func TestEnsure_Install(t *testing.T) {
	runner := &testutil.RecordingRunner{}
	host := &platform.Platform{OS: "linux", Available: []string{"apt-get"}}
	conf := core.Conf{core.ConfSystemPMMode: "install"}

	res, err := Ensure(context.Background(), runner, host, conf, options.Defaults(), gcc)
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	lines := runner.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[len(lines)-1], "apt-get install -y --no-install-recommends libgfortran5")
}

func TestEnsure_CheckFails(t *testing.T) {
	runner := &testutil.RecordingRunner{}
	host := &platform.Platform{OS: "linux", Available: []string{"apt-get"}}

	_, err := Ensure(context.Background(), runner, host, core.Conf{}, options.Defaults(), gcc)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
