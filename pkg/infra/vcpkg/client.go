package vcpkg

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

type client struct {
	exec interfaces.PrivilegedExecutor
	root string
	tool string
}

// NewClient creates a Registry for the vcpkg installation of wc. Every
// invocation goes through exec since the installation is usually system-owned.
func NewClient(exec interfaces.PrivilegedExecutor, wc model.WorkingContext) interfaces.Registry {
	return &client{
		exec: exec,
		root: wc.RegistryRoot,
		tool: wc.RegistryTool(),
	}
}

// Install runs "vcpkg install <port>:<triplet>" and streams its output
func (c *client) Install(ctx context.Context, port, triplet string) (*model.BuildResult, error) {
	result, err := c.exec.Run(ctx, model.Command{
		Dir:    c.root,
		Name:   c.tool,
		Args:   []string{"install", port + ":" + triplet},
		Stream: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run vcpkg install", goerr.V("port", port), goerr.V("triplet", triplet))
	}

	return &model.BuildResult{
		ExitCode: result.ExitCode,
		Output:   result.Combined,
	}, nil
}

// FormatManifest runs "vcpkg format-manifest <path>"
func (c *client) FormatManifest(ctx context.Context, path string) error {
	return c.mustRun(ctx, "format-manifest", path)
}

// AddVersion runs "vcpkg x-add-version <port>"
func (c *client) AddVersion(ctx context.Context, port string) error {
	return c.mustRun(ctx, "x-add-version", port)
}

func (c *client) mustRun(ctx context.Context, args ...string) error {
	result, err := c.exec.Run(ctx, model.Command{
		Dir:    c.root,
		Name:   c.tool,
		Args:   args,
		Stream: true,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to run vcpkg", goerr.V("args", args))
	}
	if !result.Succeeded() {
		return goerr.New("vcpkg command failed",
			goerr.T(types.ErrTagCommand),
			goerr.V("args", args),
			goerr.V("exit_code", result.ExitCode),
			goerr.V("output", result.Combined),
		)
	}
	return nil
}
