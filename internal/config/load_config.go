package config

import (
	"fmt"
	"os/user"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"desktop-setup/internal/logger"
)

// HomeResolver maps a local account name to its home directory.
type HomeResolver func(username string) (string, error)

// LookupHome resolves a home directory through the OS account database,
// the same lookup the shell performs for "~username".
func LookupHome(username string) (string, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	return u.HomeDir, nil
}

// LoadEnvironment parses the ambient configuration from the process environment.
// When envFile is set it is loaded first; variables already present in the
// environment take precedence over the file.
func LoadEnvironment(envFile string) (Environment, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Environment{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		logger.Debug("[DEBUG] Loaded environment from %s\n", envFile)
	}

	var cfg Environment
	if err := env.Parse(&cfg); err != nil {
		return Environment{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	logger.Debug("[DEBUG] PYENV_ROOT=%q\n", cfg.PyenvRoot)
	return cfg, nil
}
