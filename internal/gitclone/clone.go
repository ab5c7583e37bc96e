// Package gitclone clones source repositories without shelling out to git.
package gitclone

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"

	"desktop-setup/internal/logger"
)

// Cloner clones a repository into a local directory.
type Cloner interface {
	Clone(ctx context.Context, url, dest string) error
}

// GoGit clones with go-git. Progress, when set, receives the remote's
// sideband output.
type GoGit struct {
	Progress io.Writer
}

// Clone performs a full clone of url into dest. dest must not already hold a repository.
func (g GoGit) Clone(ctx context.Context, url, dest string) error {
	logger.Debug("[DEBUG] Cloning %s into %s\n", url, dest)

	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:      url,
		Progress: g.Progress,
	})
	if err != nil {
		return fmt.Errorf("failed to clone %s into %s: %w", url, dest, err)
	}
	return nil
}

// Dry logs the clone it would perform.
type Dry struct{}

// Clone does nothing.
func (Dry) Clone(_ context.Context, url, dest string) error {
	logger.Plan("[DRY-RUN] git clone %s %s\n", url, dest)
	return nil
}
