package installer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"desktop-setup/internal/logger"
)

// InstallVersionManager clones pyenv into the box user's ~/.pyenv, then the
// pyenv-virtualenv plugin into $PYENV_ROOT/plugins. The root is read after the
// first clone; when it is unset the plugin clone is skipped and the returned
// error wraps ErrMissingConfig.
func (in *Installer) InstallVersionManager(ctx context.Context, boxUser string) error {
	layout, err := in.layoutFor("version manager installer", boxUser)
	if err != nil {
		return err
	}
	vm := in.Catalog.VersionManager

	var errs []error
	logger.Info("[INFO] Cloning %s into %s\n", vm.Repo, layout.VersionManagerRoot)
	if err := in.Cloner.Clone(ctx, vm.Repo, layout.VersionManagerRoot); err != nil {
		logger.Error("[ERROR] %v\n", err)
		errs = append(errs, err)
	}

	root := in.Env.PyenvRoot
	if root == "" {
		err := fmt.Errorf("%w: PYENV_ROOT is not set, cannot place %s", ErrMissingConfig, vm.PluginName)
		logger.Error("[ERROR] %v\n", err)
		return errors.Join(append(errs, err)...)
	}

	plugin := filepath.Join(root, "plugins", vm.PluginName)
	logger.Info("[INFO] Cloning %s into %s\n", vm.PluginRepo, plugin)
	if err := in.Cloner.Clone(ctx, vm.PluginRepo, plugin); err != nil {
		logger.Error("[ERROR] %v\n", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
