// Package catalog holds the fixed package names, vendor URLs and repository
// definitions the provisioner installs. The data ships embedded in the binary.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog is the parsed form of catalog.yaml.
type Catalog struct {
	Apt            Apt            `yaml:"apt"`
	Editor         Editor         `yaml:"editor"`
	Linter         Package        `yaml:"linter"`
	EnvLoader      Package        `yaml:"env_loader"`
	VersionManager VersionManager `yaml:"version_manager"`
	VPN            VPN            `yaml:"vpn"`
}

// Apt lists the packages installed by the dependency step, one install command per list.
type Apt struct {
	BuildDependencies   []string `yaml:"build_dependencies"`
	EditorPrerequisites []string `yaml:"editor_prerequisites"`
	VCS                 []string `yaml:"vcs"`
}

// Package names a single APT package.
type Package struct {
	Package string `yaml:"package"`
}

// Editor describes the Sublime Text vendor repository and Package Control.
type Editor struct {
	Package           string `yaml:"package"`
	KeyURL            string `yaml:"key_url"`
	RepoLine          string `yaml:"repo_line"`
	RepoFile          string `yaml:"repo_file"`
	PackageControlURL string `yaml:"package_control_url"`
}

// VersionManager holds the pyenv repository and its virtualenv plugin.
type VersionManager struct {
	Repo       string `yaml:"repo"`
	PluginRepo string `yaml:"plugin_repo"`
	PluginName string `yaml:"plugin_name"`
}

// VPN describes the ProtonVPN vendor repository.
type VPN struct {
	KeyURL     string `yaml:"key_url"`
	Repository string `yaml:"repository"`
	Package    string `yaml:"package"`
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every required field that is empty.
func (c *Catalog) Validate() error {
	required := map[string]string{
		"editor.package":              c.Editor.Package,
		"editor.key_url":              c.Editor.KeyURL,
		"editor.repo_line":            c.Editor.RepoLine,
		"editor.repo_file":            c.Editor.RepoFile,
		"editor.package_control_url":  c.Editor.PackageControlURL,
		"linter.package":              c.Linter.Package,
		"env_loader.package":          c.EnvLoader.Package,
		"version_manager.repo":        c.VersionManager.Repo,
		"version_manager.plugin_repo": c.VersionManager.PluginRepo,
		"version_manager.plugin_name": c.VersionManager.PluginName,
		"vpn.key_url":                 c.VPN.KeyURL,
		"vpn.repository":              c.VPN.Repository,
		"vpn.package":                 c.VPN.Package,
	}

	keys := make([]string, 0, len(required))
	for key := range required {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var missing []string
	for _, key := range keys {
		if strings.TrimSpace(required[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(c.Apt.BuildDependencies) == 0 {
		missing = append(missing, "apt.build_dependencies")
	}
	if len(missing) > 0 {
		return fmt.Errorf("catalog is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
