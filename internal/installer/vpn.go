package installer

import (
	"context"
	"errors"

	"desktop-setup/internal/executor"
	"desktop-setup/internal/logger"
)

// InstallVPN registers the ProtonVPN repository, refreshes the system and
// installs the client.
func (in *Installer) InstallVPN(ctx context.Context) error {
	vpn := in.Catalog.VPN
	logger.Info("[INFO] Installing %s\n", vpn.Package)

	var errs []error
	errs = append(errs, in.importKey(ctx, vpn.KeyURL))
	errs = append(errs, in.run(ctx, executor.Cmd("add-apt-repository", vpn.Repository)))
	// The new repository is only visible after a refresh
	errs = append(errs, in.UpdateSystem(ctx))
	errs = append(errs, in.aptInstall(ctx, nil, vpn.Package))
	return errors.Join(errs...)
}
