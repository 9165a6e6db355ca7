package config

import (
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/infra/notify"
)

// Notify holds where release results are reported
type Notify struct {
	SlackWebhookURL string
	SentryDSN       string
	SentryEnv       string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook receiving the release result",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("VCPKG_RELEASE_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN receiving failed releases",
			Destination: &c.SentryDSN,
			Sources:     cli.EnvVars("VCPKG_RELEASE_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Value:       "production",
			Destination: &c.SentryEnv,
			Sources:     cli.EnvVars("VCPKG_RELEASE_SENTRY_ENV"),
		},
	}
}

// Configure builds a notifier for every configured destination
func (c *Notify) Configure() (interfaces.Notifier, error) {
	var notifiers []interfaces.Notifier

	if c.SlackWebhookURL != "" {
		notifiers = append(notifiers, notify.NewSlack(c.SlackWebhookURL))
	}

	if c.SentryDSN != "" {
		sentry, err := notify.NewSentry(c.SentryDSN, c.SentryEnv)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, sentry)
	}

	return notify.New(notifiers...), nil
}
