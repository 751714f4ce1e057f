package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command describes one external process invocation
type Command struct {
	Dir  string
	Name string
	Args []string
	Env  []string
}

// String renders the command line for logs
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner executes external commands. Stages take a Runner so tests can
// record invocations instead of spawning tools.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands with os/exec, streaming output to Stdout/Stderr
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd and waits for it to finish
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.command(ctx, cmd)
	c.Stdout = r.Stdout
	var stderr bytes.Buffer
	if r.Stderr != nil {
		c.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		c.Stderr = &stderr
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w%s", cmd, err, tail(stderr.String()))
	}
	return nil
}

// Output executes cmd and returns its trimmed stdout
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.command(ctx, cmd)
	var stderr bytes.Buffer
	c.Stderr = &stderr

	out, err := c.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w%s", cmd, err, tail(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(c.Environ(), cmd.Env...)
	}
	return c
}

// tail keeps the last lines of stderr for error messages
func tail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 10 {
		lines = lines[len(lines)-10:]
	}
	return "\n" + strings.Join(lines, "\n")
}
