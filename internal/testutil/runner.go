// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arc-language/spralpkg/pkg/core"
)

// RecordingRunner records commands instead of executing them
type RecordingRunner struct {
	mu       sync.Mutex
	Commands []core.Command

	// Fail makes Run/Output return the error for commands whose name+args
	// contain the key
	Fail map[string]error

	// Outputs maps a command line substring to the stdout Output returns
	Outputs map[string]string

	// OnRun, when set, is called for every successful Run
	OnRun func(cmd core.Command) error
}

// Run records cmd
func (r *RecordingRunner) Run(_ context.Context, cmd core.Command) error {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	r.mu.Unlock()

	if err := r.failure(cmd); err != nil {
		return err
	}
	if r.OnRun != nil {
		return r.OnRun(cmd)
	}
	return nil
}

// Output records cmd and returns the configured stdout
func (r *RecordingRunner) Output(_ context.Context, cmd core.Command) (string, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	r.mu.Unlock()

	if err := r.failure(cmd); err != nil {
		return "", err
	}
	line := cmd.String()
	for k, out := range r.Outputs {
		if strings.Contains(line, k) {
			return out, nil
		}
	}
	return "", nil
}

// Lines returns the recorded command lines
func (r *RecordingRunner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		lines = append(lines, c.String())
	}
	return lines
}

func (r *RecordingRunner) failure(cmd core.Command) error {
	line := cmd.String()
	for k, err := range r.Fail {
		if strings.Contains(line, k) {
			return err
		}
	}
	return nil
}
