package config

import (
	"path/filepath"
)

// Invocation carries the positional arguments of a full run.
// - BoxUser: local account whose home directory receives configuration.
// - GitName / GitEmail: global git identity.
// Values are used as given; nothing is validated beyond presence.
type Invocation struct {
	BoxUser  string
	GitName  string
	GitEmail string
}

// Environment is the ambient configuration read from the process environment.
// - PyenvRoot: installation root of the version manager; the plugin clone lands beneath it.
type Environment struct {
	PyenvRoot string `env:"PYENV_ROOT"`
}

// Layout holds every per-user path the provisioner touches.
// It is derived from the home directory alone, see NewLayout.
type Layout struct {
	Home               string
	PackageControlDir  string // Sublime Text "Installed Packages" directory
	UserConfigDir      string // Sublime Text Packages/User directory
	Profile            string // ~/.bashrc
	VersionManagerRoot string // primary pyenv clone destination
}

// editorConfigDir is the Sublime Text 3 settings tree relative to the home directory.
const editorConfigDir = ".config/sublime-text-3"

// NewLayout computes the per-user paths for a home directory.
// The Package Control directory keeps its trailing separator, matching the
// directory-prefix form download tools expect.
func NewLayout(home string) Layout {
	return Layout{
		Home:               home,
		PackageControlDir:  filepath.Join(home, editorConfigDir, "Installed Packages") + string(filepath.Separator),
		UserConfigDir:      filepath.Join(home, editorConfigDir, "Packages", "User"),
		Profile:            filepath.Join(home, ".bashrc"),
		VersionManagerRoot: filepath.Join(home, ".pyenv"),
	}
}
