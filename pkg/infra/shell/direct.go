package shell

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/otiai10/copy"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

// Direct operates on the registry as the current user, e.g. when running as
// root in a container or against a user-owned vcpkg checkout
type Direct struct {
	*Local
}

// MakeDir creates path and its parents
func (d *Direct) MakeDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.T(types.ErrTagCommand), goerr.V("path", path))
	}
	return nil
}

// Copy copies src to dst, following cp -R semantics for a directory dst
func (d *Direct) Copy(ctx context.Context, src, dst string) error {
	target := dst
	if info, err := os.Stat(dst); err == nil && info.IsDir() {
		target = filepath.Join(dst, filepath.Base(src))
	}

	if err := copy.Copy(src, target); err != nil {
		return goerr.Wrap(err, "failed to copy",
			goerr.T(types.ErrTagCommand),
			goerr.V("src", src),
			goerr.V("dst", target),
		)
	}
	return nil
}
