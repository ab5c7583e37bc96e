package executor

import (
	"context"
	"sync"

	"desktop-setup/internal/logger"
)

// Recorder is a Runner that never starts a process. It records every command
// it is asked to run, which backs both --dry-run and the tests.
type Recorder struct {
	// Log prints each command as a dry-run plan line.
	Log bool

	// Fail, when set, decides the outcome of each command.
	Fail func(cmd Command) error

	mu       sync.Mutex
	commands []Command
}

// Run records cmd and reports the outcome chosen by Fail.
func (r *Recorder) Run(_ context.Context, cmd Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	r.mu.Unlock()

	if r.Log {
		if cmd.Stdin != nil {
			logger.Plan("[DRY-RUN] %s  (stdin: %d bytes)\n", cmd, len(cmd.Stdin))
		} else {
			logger.Plan("[DRY-RUN] %s\n", cmd)
		}
	}
	if r.Fail != nil {
		return r.Fail(cmd)
	}
	return nil
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded commands rendered as strings.
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}
