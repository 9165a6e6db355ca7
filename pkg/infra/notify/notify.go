package notify

import (
	"context"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/utils/async"
)

type multi struct {
	notifiers []interfaces.Notifier
}

// New combines notifiers. Every notifier is called even if one fails.
func New(notifiers ...interfaces.Notifier) interfaces.Notifier {
	return &multi{notifiers: notifiers}
}

// Notify calls all notifiers concurrently and joins their errors. Delivery
// continues when ctx is already cancelled, e.g. after an interrupted run.
func (m *multi) Notify(ctx context.Context, report *model.ReleaseReport) error {
	handlers := make([]func(context.Context) error, len(m.notifiers))
	for i, n := range m.notifiers {
		handlers[i] = func(ctx context.Context) error {
			return n.Notify(ctx, report)
		}
	}
	return async.Gather(ctx, handlers...)
}
