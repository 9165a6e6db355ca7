package interfaces

import (
	"context"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

// Notifier reports the outcome of a release run to an external service
type Notifier interface {
	Notify(ctx context.Context, report *model.ReleaseReport) error
}
