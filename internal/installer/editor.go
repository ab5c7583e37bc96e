package installer

import (
	"context"
	"errors"
	"fmt"

	"desktop-setup/internal/config"
	"desktop-setup/internal/executor"
	"desktop-setup/internal/logger"
)

// InstallEditor installs Sublime Text for boxUser:
//  1. import the vendor signing key
//  2. write the APT source list entry
//  3. apt-get install the editor
//  4. download Package Control into "Installed Packages" (the directory must exist)
//  5. copy the bundled User settings into Packages/User
//
// Every sub-step is attempted even if an earlier one failed.
func (in *Installer) InstallEditor(ctx context.Context, boxUser string) error {
	layout, err := in.layoutFor("editor installer", boxUser)
	if err != nil {
		return err
	}
	ed := in.Catalog.Editor
	logger.Info("[INFO] Installing %s for %s\n", ed.Package, boxUser)

	var errs []error
	errs = append(errs, in.importKey(ctx, ed.KeyURL))

	// tee writes the source list entry it receives on stdin
	repo := executor.Cmd("tee", ed.RepoFile).WithStdin([]byte(ed.RepoLine + "\n"))
	repo.Quiet = true
	errs = append(errs, in.run(ctx, repo))

	errs = append(errs, in.aptInstall(ctx, nil, ed.Package))
	errs = append(errs, in.installPackageControl(ctx, layout))
	errs = append(errs, in.installUserConfig(layout))
	return errors.Join(errs...)
}

func (in *Installer) installPackageControl(ctx context.Context, layout config.Layout) error {
	url := in.Catalog.Editor.PackageControlURL
	logger.Info("[INFO] Downloading Package Control into %s\n", layout.PackageControlDir)

	path, err := in.Fetcher.Download(ctx, url, layout.PackageControlDir)
	if err != nil {
		logger.Error("[ERROR] Package Control download failed: %v\n", err)
		return fmt.Errorf("install package control: %w", err)
	}
	logger.Debug("[DEBUG] Package Control saved to %s\n", path)
	return nil
}

// installUserConfig places the bundled settings into Packages/User. A
// directory source is copied; an archive source is extracted.
func (in *Installer) installUserConfig(layout config.Layout) error {
	src := in.UserConfigSource
	if src == "" {
		src = DefaultUserConfigSource
	}
	dest := layout.UserConfigDir

	if in.DryRun {
		logger.Plan("[DRY-RUN] copy %s -> %s\n", src, dest)
		return nil
	}

	logger.Info("[INFO] Installing editor settings from %s into %s\n", src, dest)
	var err error
	if IsArchive(src) {
		err = ExtractArchive(src, dest)
	} else {
		err = copyTree(src, dest)
	}
	if err != nil {
		logger.Error("[ERROR] Failed to install editor settings: %v\n", err)
		return fmt.Errorf("install user config: %w", err)
	}
	return nil
}
