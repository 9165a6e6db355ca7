package notify

import (
	"context"

	"github.com/slack-go/slack"
)

// ReplacePostWebhook swaps the Slack webhook call and returns a restore func
func ReplacePostWebhook(f func(ctx context.Context, url string, msg *slack.WebhookMessage) error) func() {
	orig := postWebhook
	postWebhook = f
	return func() { postWebhook = orig }
}
