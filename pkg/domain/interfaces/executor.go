package interfaces

import (
	"context"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

// CommandExecutor runs subprocesses
type CommandExecutor interface {
	// Run starts cmd and waits for it. A non-zero exit status is reported in
	// the result, not as an error; the error is for commands that could not run.
	Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error)
}

// PrivilegedExecutor performs operations on the system-owned registry
// installation, elevating where the environment requires it
type PrivilegedExecutor interface {
	CommandExecutor

	// MakeDir creates path and any missing parents
	MakeDir(ctx context.Context, path string) error

	// Copy copies the file or directory src to dst recursively
	Copy(ctx context.Context, src, dst string) error
}
