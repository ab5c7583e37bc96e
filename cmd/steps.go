package cmd

import (
	"github.com/spf13/cobra"

	"desktop-setup/internal/installer"
	"desktop-setup/internal/provision"
)

// stepCmd builds a sub-command that runs a single provisioning step.
// nargs is the exact number of positional arguments the step needs.
func stepCmd(use, short string, nargs int, build func(in *installer.Installer, args []string) provision.Step) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build the installer only once the arguments are known to be valid
			inst, err := newInstaller()
			if err != nil {
				return err
			}

			// A single step still goes through the runner for the summary and report
			return runSteps(cmd.Context(), build(inst, args))
		},
	}
}

// updateCmd refreshes the package index and upgrades installed packages.
var updateCmd = stepCmd("update", "Refresh the package index and upgrade packages", 0,
	func(in *installer.Installer, _ []string) provision.Step { return provision.UpdateStep(in) })

// depsCmd installs the build dependencies, the editor prerequisites and git.
var depsCmd = stepCmd("deps", "Install build and runtime dependencies", 0,
	func(in *installer.Installer, _ []string) provision.Step { return provision.DepsStep(in) })

// gitCmd sets the global git user.name and user.email.
var gitCmd = stepCmd("git <git-name> <email>", "Set the global git identity", 2,
	func(in *installer.Installer, args []string) provision.Step {
		return provision.GitStep(in, args[0], args[1])
	})

// editorCmd installs Sublime Text and the User settings into the box user's home.
var editorCmd = stepCmd("editor <box-user>", "Install Sublime Text, Package Control and User settings", 1,
	func(in *installer.Installer, args []string) provision.Step { return provision.EditorStep(in, args[0]) })

// linterCmd installs flake8.
var linterCmd = stepCmd("linter", "Install flake8", 0,
	func(in *installer.Installer, _ []string) provision.Step { return provision.LinterStep(in) })

// pyenvCmd clones pyenv into the box user's home and pyenv-virtualenv into $PYENV_ROOT.
var pyenvCmd = stepCmd("pyenv <box-user>", "Clone pyenv and pyenv-virtualenv", 1,
	func(in *installer.Installer, args []string) provision.Step { return provision.PyenvStep(in, args[0]) })

// direnvCmd installs direnv.
var direnvCmd = stepCmd("direnv", "Install direnv", 0,
	func(in *installer.Installer, _ []string) provision.Step { return provision.DirenvStep(in) })

// vpnCmd registers the ProtonVPN repository and installs the client.
var vpnCmd = stepCmd("vpn", "Install the ProtonVPN client", 0,
	func(in *installer.Installer, _ []string) provision.Step { return provision.VPNStep(in) })

// profileCmd appends the pyenv and direnv hooks to the box user's ~/.bashrc.
var profileCmd = stepCmd("profile <box-user>", "Append pyenv and direnv hooks to ~/.bashrc", 1,
	func(in *installer.Installer, args []string) provision.Step { return provision.ProfileStep(in, args[0]) })

// init registers every single-step sub-command under the root command.
func init() {
	rootCmd.AddCommand(updateCmd, depsCmd, gitCmd, editorCmd, linterCmd, pyenvCmd, direnvCmd, vpnCmd, profileCmd)
}
