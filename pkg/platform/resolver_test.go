package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCommands(t *testing.T, outputs map[string]string) {
	t.Helper()
	orig := commandOutput
	commandOutput = func(_ context.Context, name string, args ...string) (string, error) {
		key := name
		if len(args) > 0 {
			key += " " + args[0]
		}
		if out, ok := outputs[key]; ok {
			return out, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { commandOutput = orig })
}

func TestIdentifyCompiler(t *testing.T) {
	stubCommands(t, map[string]string{
		"gcc --version":      "gcc (Ubuntu 13.2.0-23ubuntu4) 13.2.0\nCopyright (C) 2023 Free Software Foundation, Inc.",
		"gcc -dumpversion":   "13",
		"clang --version":    "Ubuntu clang version 18.1.3\nTarget: x86_64-pc-linux-gnu",
		"clang -dumpversion": "18",
		"cc --version":       "Apple clang version 15.0.0 (clang-1500.3.9.4)",
		"cc -dumpversion":    "15.0.0",
		"mystery --version":  "tcc version 0.9.27",
	})
	ctx := context.Background()

	c, v, ok := identifyCompiler(ctx, "gcc", OSLinux)
	require.True(t, ok)
	assert.Equal(t, CompilerGCC, c)
	assert.Equal(t, "13", v)

	c, v, ok = identifyCompiler(ctx, "clang", OSLinux)
	require.True(t, ok)
	assert.Equal(t, CompilerClang, c)
	assert.Equal(t, "18", v)

	c, _, ok = identifyCompiler(ctx, "cc", OSMacos)
	require.True(t, ok)
	assert.Equal(t, CompilerAppleClang, c)

	c, _, ok = identifyCompiler(ctx, "cl.exe", OSWindows)
	require.True(t, ok)
	assert.Equal(t, CompilerMSVC, c)

	_, _, ok = identifyCompiler(ctx, "mystery", OSLinux)
	assert.False(t, ok)
}

func TestResolveSettings_PinnedCompiler(t *testing.T) {
	p := &Platform{OS: "linux", Arch: "amd64"}

	s, err := ResolveSettings(context.Background(), p, map[string]string{
		"compiler":         "gcc",
		"compiler.version": "12",
	})
	require.NoError(t, err)

	assert.Equal(t, OSLinux, s.OS)
	assert.Equal(t, "x86_64", s.Arch)
	assert.Equal(t, CompilerGCC, s.Compiler)
	assert.Equal(t, BuildRelease, s.BuildType)
	assert.Equal(t, "gnu17", s.Cppstd)
}

func TestResolveSettings_PinnedCppstd(t *testing.T) {
	p := &Platform{OS: "darwin", Arch: "arm64"}

	s, err := ResolveSettings(context.Background(), p, map[string]string{
		"compiler":        "apple-clang",
		"compiler.cppstd": "gnu98",
	})
	require.NoError(t, err)
	assert.Equal(t, OSMacos, s.OS)
	assert.Equal(t, "armv8", s.Arch)
	assert.Equal(t, "gnu98", s.Cppstd)
}

func TestResolveSettings_UnsupportedOS(t *testing.T) {
	_, err := ResolveSettings(context.Background(), &Platform{OS: "plan9", Arch: "amd64"}, map[string]string{"compiler": "gcc"})
	assert.Error(t, err)
}

func TestPlatformHas(t *testing.T) {
	p := &Platform{OS: "linux", Available: []string{"apt-get", "dnf"}, Preferred: "apt-get"}
	assert.True(t, p.Has("dnf"))
	assert.False(t, p.Has("brew"))
	assert.Contains(t, p.String(), "preferred: apt-get")
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, 13, majorVersion("13.2.0"))
	assert.Equal(t, 18, majorVersion("18"))
	assert.Equal(t, -1, majorVersion(""))
	assert.Equal(t, -1, majorVersion("trunk"))
}
