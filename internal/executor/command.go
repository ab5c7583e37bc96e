package executor

import (
	"context"
	"fmt"
	"strings"
)

// Command is one external process invocation. Arguments are passed as argv,
// never through a shell, so metacharacters in values are inert.
type Command struct {
	Name string
	Args []string

	// Stdin, when non-nil, is fed to the process as its standard input.
	// This is how bytes fetched in one stage reach a second process.
	Stdin []byte

	// Quiet discards the process's standard output (e.g. tee echoing its input).
	Quiet bool
}

// Cmd builds a Command from a program name and its arguments.
func Cmd(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// WithStdin returns a copy of c that reads data on standard input.
func (c Command) WithStdin(data []byte) Command {
	c.Stdin = data
	return c
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner runs commands one at a time, waiting for each to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// CommandError is returned when a process cannot be started or exits non-zero.
type CommandError struct {
	Command  Command
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
