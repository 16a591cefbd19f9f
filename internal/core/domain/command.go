package domain

import (
	"fmt"
	"strings"
)

// Command describes one external process invocation.
// Dir is always explicit; an empty Dir runs in the project root chosen by the caller.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env holds KEY=VALUE overrides merged on top of the process environment.
	// A PATH entry is prepended to the inherited PATH.
	Env []string
}

// NewCommand creates a command with the given name and arguments.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// In returns a copy of the command that runs in dir.
func (c Command) In(dir string) Command {
	c.Dir = dir
	return c
}

// WithEnv returns a copy of the command with additional environment entries.
func (c Command) WithEnv(env ...string) Command {
	c.Env = append(append([]string(nil), c.Env...), env...)
	return c
}

// Argv returns the full argument vector including the program name.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// Output is the captured result of a successful command.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// ExternalToolError describes a failed process invocation.
type ExternalToolError struct {
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
	Cause    error
}

// Error implements the error interface.
func (e *ExternalToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s could not be run: %v", e.Tool, e.Cause)
	}
	return fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
}

// Unwrap exposes ErrExternalTool and the underlying cause.
func (e *ExternalToolError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrExternalTool}
	}
	return []error{ErrExternalTool, e.Cause}
}
