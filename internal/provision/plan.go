package provision

import (
	"context"

	"desktop-setup/internal/config"
	"desktop-setup/internal/installer"
)

// Step names, also used as sub-command names.
const (
	StepUpdate  = "update"
	StepDeps    = "deps"
	StepGit     = "git"
	StepEditor  = "editor"
	StepLinter  = "linter"
	StepPyenv   = "pyenv"
	StepDirenv  = "direnv"
	StepVPN     = "vpn"
	StepProfile = "profile"
)

// UpdateStep wraps the system updater.
func UpdateStep(in *installer.Installer) Step {
	return Step{Name: StepUpdate, Run: in.UpdateSystem}
}

// DepsStep wraps the dependency installer.
func DepsStep(in *installer.Installer) Step {
	return Step{Name: StepDeps, Run: in.InstallDependencies}
}

// GitStep wraps the git identity configurator.
func GitStep(in *installer.Installer, name, email string) Step {
	return Step{Name: StepGit, Run: func(ctx context.Context) error {
		return in.ConfigureGit(ctx, name, email)
	}}
}

// EditorStep wraps the editor installer.
func EditorStep(in *installer.Installer, boxUser string) Step {
	return Step{Name: StepEditor, Run: func(ctx context.Context) error {
		return in.InstallEditor(ctx, boxUser)
	}}
}

// LinterStep wraps the linter installer.
func LinterStep(in *installer.Installer) Step {
	return Step{Name: StepLinter, Run: in.InstallLinter}
}

// PyenvStep wraps the version manager installer.
func PyenvStep(in *installer.Installer, boxUser string) Step {
	return Step{Name: StepPyenv, Run: func(ctx context.Context) error {
		return in.InstallVersionManager(ctx, boxUser)
	}}
}

// DirenvStep wraps the environment loader installer.
func DirenvStep(in *installer.Installer) Step {
	return Step{Name: StepDirenv, Run: in.InstallEnvLoader}
}

// VPNStep wraps the VPN client installer.
func VPNStep(in *installer.Installer) Step {
	return Step{Name: StepVPN, Run: in.InstallVPN}
}

// ProfileStep wraps the shell profile updater.
func ProfileStep(in *installer.Installer, boxUser string) Step {
	return Step{Name: StepProfile, Run: func(ctx context.Context) error {
		return in.UpdateShellProfile(ctx, boxUser)
	}}
}

// FullPlan is the complete run: update, every component in order, update again.
// The shell profile step receives the box user like every other per-user step.
func FullPlan(in *installer.Installer, inv config.Invocation) []Step {
	return []Step{
		UpdateStep(in),
		DepsStep(in),
		GitStep(in, inv.GitName, inv.GitEmail),
		EditorStep(in, inv.BoxUser),
		LinterStep(in),
		PyenvStep(in, inv.BoxUser),
		DirenvStep(in),
		VPNStep(in),
		ProfileStep(in, inv.BoxUser),
		UpdateStep(in),
	}
}
