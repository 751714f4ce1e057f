package pkgconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arc-language/spralpkg/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	e := &registry.Entry{
		Name:       "openblas",
		Version:    "0.3.30",
		Libs:       []string{"openblas"},
		SystemLibs: []string{"m", "pthread"},
		Defines:    []string{"OPENBLAS_STATIC"},
		Root:       "/deps/openblas/0.3.30",
	}

	out, err := Render(e)
	require.NoError(t, err)

	want := `prefix=/deps/openblas/0.3.30
libdir=${prefix}/lib
includedir=${prefix}/include

Name: openblas
Description: Package openblas/0.3.30
Version: 0.3.30
Libs: -L"${libdir}" -lopenblas -lm -lpthread
Cflags: -I"${includedir}" -DOPENBLAS_STATIC
`
	assert.Equal(t, want, out)
}

func TestRender_MultipleDirsAndRequires(t *testing.T) {
	e := &registry.Entry{
		Name:          "metis",
		Version:       "5.2.1",
		PkgConfigName: "metis",
		Libs:          []string{"metis"},
		LibDirs:       []string{"lib", "lib64"},
		IncludeDirs:   []string{"include"},
		Requires:      []string{"gklib::gklib", "boost::headers"},
		Root:          "/deps/metis/5.2.1",
	}

	out, err := Render(e)
	require.NoError(t, err)
	assert.Contains(t, out, "libdir1=${prefix}/lib64\n")
	assert.Contains(t, out, `Libs: -L"${libdir}" -L"${libdir1}" -lmetis`)
	assert.Contains(t, out, "Requires: gklib boost-headers\n")
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "hwloc", ModuleName("hwloc::hwloc"))
	assert.Equal(t, "hwloc", ModuleName("hwloc"))
	assert.Equal(t, "boost-headers", ModuleName("boost::headers"))
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generators")
	entries := []*registry.Entry{
		{Name: "metis", Version: "5.2.1", Libs: []string{"metis"}, Root: "/deps/metis"},
		{Name: "hwloc", Version: "2.11.1", Libs: []string{"hwloc"}, Root: "/deps/hwloc"},
		{Name: "openblas", Version: "0.3.30", Libs: []string{"openblas"}, Root: "/deps/openblas"},
	}

	paths, err := Generate(context.Background(), entries, dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, e := range entries {
		assert.Equal(t, filepath.Join(dir, e.Name+".pc"), paths[i])
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Contains(t, string(data), "Name: "+e.Name)
	}
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, []*registry.Entry{{Name: "metis", Version: "5.2.1"}}, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
