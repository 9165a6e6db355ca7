package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/m-mizutani/vcpkg-release/pkg/domain/interfaces"
	"github.com/m-mizutani/vcpkg-release/pkg/domain/model"
)

// postWebhook is replaced in tests
var postWebhook = slack.PostWebhookContext

type slackNotifier struct {
	webhookURL string
}

// NewSlack creates a Notifier posting to a Slack incoming webhook
func NewSlack(webhookURL string) interfaces.Notifier {
	return &slackNotifier{webhookURL: webhookURL}
}

// Notify posts the release result
func (s *slackNotifier) Notify(ctx context.Context, report *model.ReleaseReport) error {
	if err := postWebhook(ctx, s.webhookURL, buildSlackMessage(report)); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook", goerr.V("package", report.Package))
	}
	return nil
}

func buildSlackMessage(report *model.ReleaseReport) *slack.WebhookMessage {
	attachment := slack.Attachment{
		Title: fmt.Sprintf("vcpkg port %s %s", report.Package, report.Version),
		Fields: []slack.AttachmentField{
			{Title: "Tag", Value: report.Tag, Short: true},
			{Title: "State", Value: report.State.String(), Short: true},
			{Title: "Duration", Value: report.Duration.Round(time.Second).String(), Short: true},
			{Title: "Run ID", Value: report.RunID, Short: true},
		},
	}

	if report.Succeeded() {
		attachment.Color = "good"
		attachment.Text = "Port validated and version metadata pushed"
		attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "SHA512", Value: report.Checksum})
	} else {
		attachment.Color = "danger"
		attachment.Text = "Release failed"
		if report.Err != nil {
			attachment.Fields = append(attachment.Fields, slack.AttachmentField{Title: "Error", Value: report.Err.Error()})
		}
	}

	return &slack.WebhookMessage{
		Text:        fmt.Sprintf("vcpkg release of %s finished: %s", report.Package, report.State),
		Attachments: []slack.Attachment{attachment},
	}
}
