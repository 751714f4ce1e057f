package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arc-language/spralpkg/pkg/logging"
)

// Clone checks out a git source into dest. Tags are fetched shallow; a pinned
// commit needs the full history.
func Clone(ctx context.Context, src Source, dest string) error {
	logger := logging.FromContext(ctx)

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("clearing source folder: %w", err)
	}

	opts := &git.CloneOptions{
		URL: src.Git,
	}
	if src.Commit == "" {
		opts.ReferenceName = plumbing.NewTagReferenceName(src.Tag)
		opts.SingleBranch = true
		opts.Depth = 1
	}

	logger.Info("cloning sources", "url", src.Git, "tag", src.Tag, "commit", src.Commit)

	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}

	if src.Commit != "" {
		wt, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("opening worktree: %w", err)
		}
		if err := wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(src.Commit)}); err != nil {
			return fmt.Errorf("checking out %s: %w", src.Commit, err)
		}
	}

	// the recipe works on a plain source tree
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("removing git metadata: %w", err)
	}

	return nil
}
