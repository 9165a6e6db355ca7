package shell

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// NewPrivileged returns an executor for the registry installation. With an
// empty elevation command the current user is assumed to own the registry
// and file operations are done in-process.
func NewPrivileged(elevate []string, local *Local) interfaces.PrivilegedExecutor {
	if len(elevate) == 0 {
		return &Direct{Local: local}
	}
	return &Elevated{
		prefix: append([]string(nil), elevate...),
		local:  local,
	}
}

// Elevated runs every command through an elevation helper such as sudo
type Elevated struct {
	prefix []string
	local  *Local
}

// Run runs cmd prefixed with the elevation command
func (e *Elevated) Run(ctx context.Context, cmd model.Command) (*model.CommandResult, error) {
	args := make([]string, 0, len(e.prefix)+len(cmd.Args))
	args = append(args, e.prefix[1:]...)
	args = append(args, cmd.Name)
	args = append(args, cmd.Args...)

	return e.local.Run(ctx, model.Command{
		Dir:    cmd.Dir,
		Name:   e.prefix[0],
		Args:   args,
		Stream: cmd.Stream,
	})
}

// MakeDir runs "mkdir -p" elevated
func (e *Elevated) MakeDir(ctx context.Context, path string) error {
	return e.mustRun(ctx, model.Command{Name: "mkdir", Args: []string{"-p", path}})
}

// Copy runs "cp -R" elevated
func (e *Elevated) Copy(ctx context.Context, src, dst string) error {
	return e.mustRun(ctx, model.Command{Name: "cp", Args: []string{"-R", src, dst}})
}

func (e *Elevated) mustRun(ctx context.Context, cmd model.Command) error {
	result, err := e.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return goerr.New("elevated command failed",
			goerr.T(types.ErrTagCommand),
			goerr.V("command", cmd.String()),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("stderr", result.Stderr),
		)
	}
	return nil
}
