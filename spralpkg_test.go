package spralpkg

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Workspace = filepath.Join(root, "work")
	cfg.PackagePath = filepath.Join(root, "package")
	cfg.DepsPath = filepath.Join(root, "deps")
	cfg.Settings = map[string]string{
		"compiler":         "clang",
		"compiler.version": "18",
	}
	return cfg
}

func TestManager_Inspect(t *testing.T) {
	cfg := testConfig(t)
	cfg.Options["shared"] = "True"

	m, err := NewManager(cfg)
	require.NoError(t, err)

	in, err := m.Inspect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "spral/"+m.Versions()[0], in.Ref)
	assert.NotContains(t, in.Options, "fPIC")
	assert.Equal(t, "clang", in.Settings["compiler"])
	assert.Equal(t, "gnu17", in.Settings["compiler.cppstd"])
}

func TestManager_UnknownVersion(t *testing.T) {
	cfg := testConfig(t)
	cfg.Version = "1999.01.01"

	m, err := NewManager(cfg)
	require.NoError(t, err)

	_, err = m.Recipe(context.Background())
	assert.Error(t, err)
}

func TestManager_InvalidOption(t *testing.T) {
	cfg := testConfig(t)
	cfg.Options["with_cuda"] = "True"

	m, err := NewManager(cfg)
	require.NoError(t, err)

	_, err = m.Inspect(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestManager_SyncWithoutURL(t *testing.T) {
	m, err := NewManager(testConfig(t))
	require.NoError(t, err)

	_, err = m.Sync(context.Background())
	assert.Error(t, err)
}
