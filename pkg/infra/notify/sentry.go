package notify

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/types"
)

const sentryFlushTimeout = 5 * time.Second

type sentryNotifier struct {
	hub *sentry.Hub
}

// NewSentry creates a Notifier that reports failed runs to Sentry
func NewSentry(dsn, environment string) (interfaces.Notifier, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     "vcpkg-release@" + types.Version,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sentry client")
	}

	return &sentryNotifier{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

// Notify captures the error of a failed run. Successful runs are not reported.
func (s *sentryNotifier) Notify(ctx context.Context, report *model.ReleaseReport) error {
	if report.Err == nil {
		return nil
	}

	hub := s.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("package", report.Package)
		scope.SetTag("tag", report.Tag)
		scope.SetTag("state", report.State.String())
		scope.SetTag("run_id", report.RunID)
	})
	hub.CaptureException(report.Err)

	if !hub.Flush(sentryFlushTimeout) {
		return goerr.New("timed out flushing sentry events")
	}
	return nil
}
