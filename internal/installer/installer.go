package installer

import (
	"context"
	"errors"
	"fmt"

	"desktop-setup/internal/catalog"
	"desktop-setup/internal/config"
	"desktop-setup/internal/executor"
	"desktop-setup/internal/fetch"
	"desktop-setup/internal/gitclone"
	"desktop-setup/internal/logger"
)

var (
	// ErrMissingConfig is returned when required ambient configuration is absent.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrMissingArgument is returned when a component is called without an input it needs.
	ErrMissingArgument = errors.New("missing required argument")
)

// DefaultUserConfigSource is the bundled editor settings directory, relative
// to the working directory.
const DefaultUserConfigSource = "User"

// Installer runs the provisioning components. Each exported method is one
// component; it returns nil on success or every failure it ran into.
// Components never stop at the first failed command: later commands of the
// same component are still attempted.
type Installer struct {
	Runner  executor.Runner
	Fetcher fetch.Fetcher
	Cloner  gitclone.Cloner
	Catalog *catalog.Catalog
	Env     config.Environment
	Home    config.HomeResolver

	// UserConfigSource is the editor settings directory or archive copied into place.
	UserConfigSource string

	// DryRun suppresses direct filesystem writes (profile append, settings copy).
	// Commands, fetches and clones are dry through their own collaborators.
	DryRun bool
}

// layoutFor resolves the per-user paths for boxUser.
func (in *Installer) layoutFor(component, boxUser string) (config.Layout, error) {
	if boxUser == "" {
		return config.Layout{}, fmt.Errorf("%w: %s needs the box user", ErrMissingArgument, component)
	}
	resolve := in.Home
	if resolve == nil {
		resolve = config.LookupHome
	}
	home, err := resolve(boxUser)
	if err != nil {
		return config.Layout{}, err
	}
	return config.NewLayout(home), nil
}

// run executes one command and logs its failure. The error is returned so the
// component can report it.
func (in *Installer) run(ctx context.Context, cmd executor.Command) error {
	if err := in.Runner.Run(ctx, cmd); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}
	return nil
}

// aptInstall runs "apt-get install" with the given options and packages.
func (in *Installer) aptInstall(ctx context.Context, opts []string, packages ...string) error {
	args := append([]string{"install"}, opts...)
	args = append(args, packages...)
	return in.run(ctx, executor.Cmd("apt-get", args...))
}

// importKey fetches a vendor signing key and feeds it to "apt-key add -".
// When the fetch fails apt-key is not invoked.
func (in *Installer) importKey(ctx context.Context, keyURL string) error {
	logger.Info("[INFO] Importing signing key from %s\n", keyURL)
	key, err := in.Fetcher.Fetch(ctx, keyURL)
	if err != nil {
		logger.Error("[ERROR] Failed to fetch key: %v\n", err)
		return fmt.Errorf("import key %s: %w", keyURL, err)
	}
	return in.run(ctx, executor.Cmd("apt-key", "add", "-").WithStdin(key))
}
