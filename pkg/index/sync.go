// Package index populates the local dependency registry from a git
// repository holding a deps/ tree of package_info.toml entries.
package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arc-language/spralpkg/pkg/logging"
)

// DefaultBranch is cloned when no branch is given
const DefaultBranch = "main"

// Sync clones repoURL and copies its deps/ folder into depsDir, replacing
// entries with the same name and version
func Sync(ctx context.Context, repoURL, branch, depsDir string) (int, error) {
	logger := logging.FromContext(ctx)
	if branch == "" {
		branch = DefaultBranch
	}

	tempDir, err := os.MkdirTemp("", "spralpkg-index-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Info("updating dependency registry", "url", repoURL, "branch", branch)

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:           repoURL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return 0, fmt.Errorf("git clone %s: %w", repoURL, err)
	}

	src := filepath.Join(tempDir, "deps")
	if _, err := os.Stat(src); err != nil {
		return 0, fmt.Errorf("%s has no deps folder: %w", repoURL, err)
	}

	n, err := copyDir(src, depsDir)
	if err != nil {
		return 0, fmt.Errorf("copying deps registry: %w", err)
	}

	logger.Info("dependency registry updated", "path", depsDir, "files", n)
	return n, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// copyDir copies src into dst recursively and returns the number of files
func copyDir(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			n, err := copyDir(srcPath, dstPath)
			if err != nil {
				return count, err
			}
			count += n
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}
