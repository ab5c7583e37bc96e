package installer

import (
	"context"
	"errors"

	"desktop-setup/internal/executor"
	"desktop-setup/internal/logger"
)

// ConfigureGit sets the global git identity: name first, then email.
// Values go straight into argv and are not escaped or validated.
func (in *Installer) ConfigureGit(ctx context.Context, name, email string) error {
	logger.Info("[INFO] Configuring git identity %s <%s>\n", name, email)
	return errors.Join(
		in.run(ctx, executor.Cmd("git", "config", "--global", "user.name", name)),
		in.run(ctx, executor.Cmd("git", "config", "--global", "user.email", email)),
	)
}
