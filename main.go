package main

import (
	"desktop-setup/cmd" // CLI commands and execution logic
)

// main is the program entry point. It delegates to cmd.Execute().
//
// desktop-setup provisions a Debian/Ubuntu developer desktop in one linear run:
//   - refreshes and upgrades APT packages (at the start, before the VPN client install, and at the end)
//   - installs build dependencies, git, flake8 and direnv through apt-get
//   - sets the global git identity
//   - installs Sublime Text from its vendor repository, downloads Package Control,
//     and copies a bundled User settings directory (or archive) into place
//   - clones pyenv and pyenv-virtualenv
//   - installs the ProtonVPN client from its vendor repository
//   - appends pyenv and direnv hooks to the box user's ~/.bashrc
//
// Error handling strategy:
//   - every step reports success or failure; by default the run continues past failures
//     and prints a summary, --fail-fast stops at the first failed step
//   - missing PYENV_ROOT or a missing required argument ends the run immediately
//   - the process exits non-zero when any step failed or was skipped
func main() {
	cmd.Execute()
}
