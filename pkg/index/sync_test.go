package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "metis", "5.2.1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "metis", "5.2.1", "package_info.toml"), []byte("name = \"metis\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "README"), []byte("deps"), 0644))

	dst := filepath.Join(t.TempDir(), "deps")
	n, err := copyDir(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dst, "metis", "5.2.1", "package_info.toml"))
	require.NoError(t, err)
	assert.Equal(t, "name = \"metis\"\n", string(data))
}
