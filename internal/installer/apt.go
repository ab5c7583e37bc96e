package installer

import (
	"context"
	"errors"

	"desktop-setup/internal/executor"
	"desktop-setup/internal/logger"
)

// UpdateSystem refreshes the package index and upgrades installed packages.
// The upgrade runs even when the refresh failed. No -y is passed, so apt may prompt.
func (in *Installer) UpdateSystem(ctx context.Context) error {
	logger.Info("[INFO] Updating package index and upgrading packages\n")
	return errors.Join(
		in.run(ctx, executor.Cmd("apt-get", "update")),
		in.run(ctx, executor.Cmd("apt-get", "upgrade")),
	)
}

// InstallDependencies installs build dependencies for Python builds, the
// editor repository prerequisites, and the git client, as three commands.
func (in *Installer) InstallDependencies(ctx context.Context) error {
	apt := in.Catalog.Apt
	logger.Info("[INFO] Installing %d build dependencies\n", len(apt.BuildDependencies))
	return errors.Join(
		in.aptInstall(ctx, []string{"--no-install-recommends"}, apt.BuildDependencies...),
		in.aptInstall(ctx, nil, apt.EditorPrerequisites...),
		in.aptInstall(ctx, nil, apt.VCS...),
	)
}

// InstallLinter installs flake8.
func (in *Installer) InstallLinter(ctx context.Context) error {
	logger.Info("[INFO] Installing %s\n", in.Catalog.Linter.Package)
	return in.aptInstall(ctx, []string{"-y"}, in.Catalog.Linter.Package)
}

// InstallEnvLoader installs direnv.
func (in *Installer) InstallEnvLoader(ctx context.Context) error {
	logger.Info("[INFO] Installing %s\n", in.Catalog.EnvLoader.Package)
	return in.aptInstall(ctx, []string{"-y"}, in.Catalog.EnvLoader.Package)
}
