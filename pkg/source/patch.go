package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
)

// ApplyPatches applies unified diff patches to srcDir in order
func ApplyPatches(ctx context.Context, runner core.Runner, conf core.Conf, srcDir string, patches []Patch) error {
	logger := logging.FromContext(ctx)
	bin := conf.Get(core.ConfPatchBinary, "patch")

	for _, p := range patches {
		if _, err := os.Stat(p.File); err != nil {
			return fmt.Errorf("patch %s: %w", p.File, err)
		}

		logger.Info("applying patch", "file", filepath.Base(p.File), "description", p.Description)
		cmd := core.Command{
			Dir:  srcDir,
			Name: bin,
			Args: []string{"-p1", "--forward", "--batch", "-i", p.File},
		}
		if err := runner.Run(ctx, cmd); err != nil {
			return fmt.Errorf("applying patch %s: %w", filepath.Base(p.File), err)
		}
	}

	return nil
}

// ReplaceInFile replaces every occurrence of search in path. With strict
// set, a missing pattern is an error.
func ReplaceInFile(path, search, replace string, strict bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !bytes.Contains(data, []byte(search)) {
		if strict {
			return core.Configurationf("pattern %q not found in %s", search, path)
		}
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	out := bytes.ReplaceAll(data, []byte(search), []byte(replace))
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// lookupRewrite is one library lookup replaced in meson.build
type lookupRewrite struct {
	lib      string
	required string
}

// lookupRewrites lists the find_library calls forced onto dependency()
var lookupRewrites = []lookupRewrite{
	{lib: "hwloc", required: "false"},
	{lib: "metis", required: "true"},
}

// RewriteLibraryLookups makes the upstream meson.build resolve hwloc and
// metis through dependency(), i.e. through the generated pkg-config files,
// instead of its own find_library() search.
//
// This is a textual match on upstream's exact phrasing. When upstream changes
// those lines the rewrite fails loudly rather than silently building against
// whatever library the host happens to have.
func RewriteLibraryLookups(srcDir string) error {
	path := filepath.Join(srcDir, "meson.build")
	for _, r := range lookupRewrites {
		search := fmt.Sprintf("lib%[1]s = fc.find_library(lib%[1]s_name, dirs : lib%[1]s_path, required : %[2]s)", r.lib, r.required)
		replace := fmt.Sprintf("lib%[1]s = dependency(lib%[1]s_name, required : true)", r.lib)
		if err := ReplaceInFile(path, search, replace, true); err != nil {
			return fmt.Errorf("rewriting %s lookup: %w", r.lib, err)
		}
	}
	return nil
}
