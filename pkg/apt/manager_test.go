package apt

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/spralpkg/internal/testutil"
	"github.com/arc-language/spralpkg/pkg/core"
)

func TestEnsure_Check(t *testing.T) {
	runner := &testutil.RecordingRunner{
		Outputs: map[string]string{"libgfortran5": "ii "},
		Fail:    map[string]error{"libquadmath0": errors.New("no packages found")},
	}
	pm := NewPackageManager(runner, Config{})

	err := pm.Ensure(context.Background(), []string{"libgfortran5", "libquadmath0"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)
	assert.Contains(t, err.Error(), "libquadmath0")
	assert.NotContains(t, err.Error(), "libgfortran5")
}

func TestEnsure_AllPresent(t *testing.T) {
	runner := &testutil.RecordingRunner{Outputs: map[string]string{"dpkg-query": "ii "}}
	pm := NewPackageManager(runner, Config{Mode: ModeInstall})

	require.NoError(t, pm.Ensure(context.Background(), []string{"libgfortran5", "libgomp1"}))
	for _, line := range runner.Lines() {
		assert.NotContains(t, line, "apt-get")
	}
}

func TestEnsure_Install(t *testing.T) {
	runner := &testutil.RecordingRunner{Outputs: map[string]string{"libgfortran5": "ii "}}
	pm := NewPackageManager(runner, Config{Mode: ModeInstall, Sudo: true})

	require.NoError(t, pm.Ensure(context.Background(), []string{"libgfortran5", "libgomp1"}))

	lines := runner.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "sudo -E apt-get install -y --no-install-recommends libgomp1", lines[2])
	assert.Contains(t, runner.Commands[2].Env, "DEBIAN_FRONTEND=noninteractive")
}

func TestEnsure_Report(t *testing.T) {
	runner := &testutil.RecordingRunner{}
	pm := NewPackageManager(runner, Config{Mode: ModeReport})

	require.NoError(t, pm.Ensure(context.Background(), []string{"libgfortran5"}))
	assert.Empty(t, runner.Commands)
}

func TestPackageName_CrossArch(t *testing.T) {
	pm := NewPackageManager(nil, Config{HostArch: ArchAmd64, TargetArch: ArchArm64})
	assert.Equal(t, "libgfortran5:arm64", pm.PackageName("libgfortran5"))

	native := NewPackageManager(nil, Config{HostArch: ArchAmd64, TargetArch: ArchAmd64})
	assert.Equal(t, "libgfortran5", native.PackageName("libgfortran5"))
}

func TestConfigFromConf(t *testing.T) {
	cfg, err := ConfigFromConf(core.Conf{
		core.ConfSystemPMMode: "install",
		core.ConfSystemPMSudo: "true",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{Mode: ModeInstall, Sudo: true}, cfg)

	cfg, err = ConfigFromConf(core.Conf{})
	require.NoError(t, err)
	assert.Equal(t, ModeCheck, cfg.Mode)

	_, err = ConfigFromConf(core.Conf{core.ConfSystemPMMode: "yolo"})
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestFromSettings(t *testing.T) {
	a, err := FromSettings("armv8")
	require.NoError(t, err)
	assert.Equal(t, ArchArm64, a)

	_, err = FromSettings("sparc")
	assert.Error(t, err)
}
