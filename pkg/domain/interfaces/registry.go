package interfaces

import (
	"context"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

// Registry drives the vcpkg tool of a local registry installation
type Registry interface {
	// Install builds and installs port for triplet. A failed build is
	// reported through the result's exit code.
	Install(ctx context.Context, port, triplet string) (*model.BuildResult, error)

	// FormatManifest normalizes the manifest at path
	FormatManifest(ctx context.Context, path string) error

	// AddVersion records the port's current version in the version database
	AddVersion(ctx context.Context, port string) error
}
