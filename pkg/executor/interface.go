package executor

import (
	"context"
	"os"
)

// Executor defines the interface for running external media tools
type Executor interface {
	// Execute runs a command to completion and returns its stdout
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs a command to completion inside dir
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Start launches a long-running command (recorder, player) without waiting for it
	Start(name string, args ...string) (Process, error)
}

// Process is a handle to a command started with Start.
type Process interface {
	Pid() int
	Signal(sig os.Signal) error
	Kill() error
	// Wait blocks until the process exits. Safe to call more than once.
	Wait() error
	// Done is closed once the process has exited.
	Done() <-chan struct{}
	// Stderr returns what the process wrote to stderr so far.
	Stderr() string
}
