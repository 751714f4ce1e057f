package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/spralpkg/internal/testutil"
	"github.com/arc-language/spralpkg/pkg/core"
)

const upstreamMeson = `project('spral', 'c', 'cpp', 'fortran')
fc = meson.get_compiler('fortran')
libhwloc = fc.find_library(libhwloc_name, dirs : libhwloc_path, required : false)
libmetis = fc.find_library(libmetis_name, dirs : libmetis_path, required : true)
`

func TestRewriteLibraryLookups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meson.build")
	require.NoError(t, os.WriteFile(path, []byte(upstreamMeson), 0644))

	require.NoError(t, RewriteLibraryLookups(dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "libhwloc = dependency(libhwloc_name, required : true)\n")
	assert.Contains(t, out, "libmetis = dependency(libmetis_name, required : true)\n")
	assert.NotContains(t, out, "find_library")
}

func TestRewriteLibraryLookups_UpstreamDrift(t *testing.T) {
	dir := t.TempDir()
	drifted := "libhwloc = fc.find_library(libhwloc_name, required : false)\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meson.build"), []byte(drifted), 0644))

	err := RewriteLibraryLookups(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)
	assert.Contains(t, err.Error(), "hwloc")
}

func TestReplaceInFile_NotStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	require.NoError(t, ReplaceInFile(path, "absent", "x", false))
	require.NoError(t, ReplaceInFile(path, "hello", "bye", false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))
}

func TestApplyPatches(t *testing.T) {
	dir := t.TempDir()
	patchFile := filepath.Join(dir, "0001-fix.patch")
	require.NoError(t, os.WriteFile(patchFile, []byte("--- a\n+++ b\n"), 0644))

	runner := &testutil.RecordingRunner{}
	err := ApplyPatches(context.Background(), runner, core.Conf{}, "/src", []Patch{{File: patchFile}})
	require.NoError(t, err)

	require.Len(t, runner.Commands, 1)
	assert.Equal(t, "/src", runner.Commands[0].Dir)
	assert.Equal(t, "patch -p1 --forward --batch -i "+patchFile, runner.Lines()[0])

	err = ApplyPatches(context.Background(), runner, core.Conf{}, "/src", []Patch{{File: filepath.Join(dir, "missing.patch")}})
	assert.Error(t, err)
}
