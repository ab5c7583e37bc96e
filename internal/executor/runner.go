package executor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"desktop-setup/internal/logger"
)

// outputTail caps how much process output is kept for error reports.
const outputTail = 4096

// DefaultGrace is how long a cancelled command may take to exit after
// SIGINT before it is killed.
const DefaultGrace = 30 * time.Second

// ExecRunner runs commands as child processes attached to the terminal.
// Package managers may prompt for confirmation, so stdin is inherited unless
// the command supplies its own input.
type ExecRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	// Grace bounds the wait between SIGINT and SIGKILL on cancellation.
	// Zero means DefaultGrace.
	Grace time.Duration
}

// NewExecRunner returns a runner wired to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts the command and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	logger.Debug("[DEBUG] Running command: %s\n", cmd)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = r.Dir

	// On cancellation interrupt first so apt and dpkg can release their
	// locks. Only once the grace period runs out is the process killed.
	c.Cancel = func() error {
		logger.Warn("[WARN] Interrupting %s\n", cmd.Name)
		return c.Process.Signal(os.Interrupt)
	}
	c.WaitDelay = r.Grace
	if c.WaitDelay == 0 {
		c.WaitDelay = DefaultGrace
	}

	if cmd.Stdin != nil {
		c.Stdin = bytes.NewReader(cmd.Stdin)
	} else {
		c.Stdin = os.Stdin
	}

	// Keep a copy of the output so failures can be reported with context
	tail := &tailBuffer{max: outputTail}
	stdout := io.Writer(tail)
	if !cmd.Quiet && r.Stdout != nil {
		stdout = io.MultiWriter(r.Stdout, tail)
	}
	stderr := io.Writer(tail)
	if r.Stderr != nil {
		stderr = io.MultiWriter(r.Stderr, tail)
	}
	c.Stdout = stdout
	c.Stderr = stderr

	if err := c.Run(); err != nil {
		cerr := &CommandError{Command: cmd, Output: tail.String(), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return cerr
	}
	return nil
}

// tailBuffer keeps only the last max bytes written to it.
type tailBuffer struct {
	buf bytes.Buffer
	max int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	t.buf.Write(p)
	if over := t.buf.Len() - t.max; over > 0 {
		t.buf.Next(over)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
