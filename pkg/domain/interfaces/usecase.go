package interfaces

import (
	"context"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

// ReleaseUseCase defines the end-to-end port release
type ReleaseUseCase interface {
	// Release packages the latest tag found in sourceDir. ref selects the
	// branch or tag checked out for publication; empty means the default branch.
	Release(ctx context.Context, sourceDir, ref string) (*model.ReleaseReport, error)
}
