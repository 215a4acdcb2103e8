package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SlackNotifier announces new top scores on a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

func (n *SlackNotifier) RankingUpdated(ctx context.Context, u Update) error {
	return slack.PostWebhookContext(ctx, n.webhookURL, &slack.WebhookMessage{
		Text: formatAnnouncement(u),
	})
}

func formatAnnouncement(u Update) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New top score on the %s board (best of %d): *%s* with %d\n",
		u.Board, u.MatchLength, u.Entry.Name, u.Entry.Score)
	for i, e := range u.Ranking {
		fmt.Fprintf(&sb, "%d. %s %d\n", i+1, e.Name, e.Score)
	}
	return sb.String()
}
