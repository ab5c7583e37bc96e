package installer

import (
	"context"
	"fmt"
	"os"

	"desktop-setup/internal/logger"
)

// ProfileLines is the block appended to the box user's ~/.bashrc, one entry
// per write. The third entry is a multi-line block with a leading blank line.
var ProfileLines = []string{
	`export PYENV_ROOT="$HOME/.pyenv"`,
	`export PATH="$PYENV_ROOT/bin:$PATH"`,
	"\nif command -v pyenv 1>/dev/null 2>&1; then\n  eval \"$(pyenv init -)\"\nfi",
	`eval "$(pyenv virtualenv-init -)"`,
	`eval "$(direnv hook bash)"`,
}

// UpdateShellProfile appends ProfileLines to boxUser's ~/.bashrc, creating
// the file if needed. Existing content is never inspected, so repeated runs
// append the block again.
func (in *Installer) UpdateShellProfile(_ context.Context, boxUser string) error {
	layout, err := in.layoutFor("shell profile updater", boxUser)
	if err != nil {
		return err
	}
	rcPath := layout.Profile

	if in.DryRun {
		logger.Plan("[DRY-RUN] append %d lines to %s\n", len(ProfileLines), rcPath)
		return nil
	}

	// Open rc file for appending
	file, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.Error("[ERROR] Unable to open file %s for appending: %v\n", rcPath, err)
		return fmt.Errorf("open profile: %w", err)
	}
	defer file.Close()

	for _, line := range ProfileLines {
		if _, err := file.WriteString(line + "\n"); err != nil {
			logger.Error("[ERROR] Failed to write profile line: %v\n", err)
			return fmt.Errorf("write profile %s: %w", rcPath, err)
		}
		logger.Debug("[DEBUG] Appended to %s: %s\n", rcPath, line)
	}

	logger.Info("[INFO] Added %d shell init lines to %s\n", len(ProfileLines), rcPath)
	return nil
}
