package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/requirements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEntry(t *testing.T, root, name, version, body string) {
	t.Helper()
	dir := filepath.Join(root, name, version)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, InfoFile), []byte(body), 0644))
}

func TestRegistry_Resolve(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "metis", "5.1.0", `libs = ["metis"]`)
	writeEntry(t, root, "metis", "5.2.1", `
name = "metis"
libs = ["metis"]
system_libs = ["m"]
requires = ["gklib::gklib"]
[options]
with_64bit_types = "True"
`)

	r := New(root)
	entry, err := r.Resolve(requirements.Requirement{
		Name:       "metis",
		Constraint: "5.2.1",
		Options:    map[string]string{"with_64bit_types": "true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "metis/5.2.1", entry.Ref())
	assert.Equal(t, []string{"metis"}, entry.Libs)
	assert.Equal(t, []string{"m"}, entry.SystemLibs)
	assert.Equal(t, filepath.Join(root, "metis", "5.2.1"), entry.Root)
	assert.Equal(t, "metis", entry.PkgConfig())
}

func TestRegistry_ResolveRange(t *testing.T) {
	root := t.TempDir()
	for _, v := range []string{"1.1.0", "1.4.2", "1.9.0", "2.0.0"} {
		writeEntry(t, root, "meson", v, `libs = []`)
	}

	entry, err := New(root).Resolve(requirements.Requirement{Name: "meson", Constraint: "[>=1.2.3 <2]"})
	require.NoError(t, err)
	assert.Equal(t, "1.9.0", entry.Version)
}

func TestRegistry_OptionMismatch(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "metis", "5.2.1", "libs = [\"metis\"]\n[options]\nwith_64bit_types = \"False\"\n")

	_, err := New(root).Resolve(requirements.Requirement{
		Name:       "metis",
		Constraint: "5.2.1",
		Options:    map[string]string{"with_64bit_types": "True"},
	})
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestRegistry_UnrecordedOption(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "metis", "5.2.1", `libs = ["metis"]`)
	writeEntry(t, root, "openblas", "0.3.30", `libs = ["openblas"]`)
	r := New(root)

	tests := []struct {
		name    string
		req     requirements.Requirement
		wantErr bool
	}{
		{
			name:    "metis default is 32-bit",
			req:     requirements.Requirement{Name: "metis", Constraint: "5.2.1", Options: map[string]string{"with_64bit_types": "True"}},
			wantErr: true,
		},
		{
			name: "metis default matches",
			req:  requirements.Requirement{Name: "metis", Constraint: "5.2.1", Options: map[string]string{"with_64bit_types": "False"}},
		},
		{
			name:    "option without a known default",
			req:     requirements.Requirement{Name: "openblas", Constraint: "0.3.30", Options: map[string]string{"use_thread": "True"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := r.Resolve(tt.req)
			if tt.wantErr {
				assert.Nil(t, entry)
				assert.ErrorIs(t, err, core.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Name+"/"+tt.req.Constraint, entry.Ref())
		})
	}
}

func TestRegistry_NotFound(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "hwloc", "2.10.0", `libs = ["hwloc"]`)

	r := New(root)
	_, err := r.Resolve(requirements.Requirement{Name: "hwloc", Constraint: "2.11.1"})
	assert.ErrorIs(t, err, core.ErrDependencyNotFound)

	_, err = r.Resolve(requirements.Requirement{Name: "openblas", Constraint: "0.3.30"})
	assert.ErrorIs(t, err, core.ErrDependencyNotFound)

	_, err = New(filepath.Join(root, "missing")).Versions("hwloc")
	assert.Error(t, err)
}

func TestRegistry_MissingInfoFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "hwloc", "2.11.1"), 0755))

	_, err := New(root).Load("hwloc", "2.11.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing package_info.toml")
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spral", InfoFile)
	in := &Entry{
		Name:       "spral",
		Version:    "2025.03.06",
		Libs:       []string{"spral"},
		SystemLibs: []string{"m", "gomp"},
		Options:    map[string]string{"shared": "False"},
	}
	require.NoError(t, WriteFile(path, in))

	out, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in.Libs, out.Libs)
	assert.Equal(t, in.SystemLibs, out.SystemLibs)
	assert.Equal(t, in.Options, out.Options)
	assert.Equal(t, filepath.Dir(path), out.Root)
}
