// Package notify delivers search replies to chat channels.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/iamLiquidX/SearchX/search"
)

// ErrNoSlackClient is returned when Slack delivery is requested without a token.
var ErrNoSlackClient = errors.New("slack client not configured, set SLACK_BOT_TOKEN")

// Slack posts replies to a Slack channel. The reply's action becomes a link button.
type Slack struct {
	api *slack.Client
}

// NewSlack creates a Slack notifier. api may be nil, in which case Post fails
// with ErrNoSlackClient.
func NewSlack(api *slack.Client) *Slack {
	return &Slack{api: api}
}

// Post sends reply to channel and returns the message timestamp.
func (s *Slack) Post(ctx context.Context, channel string, reply search.Reply) (string, error) {
	if s.api == nil {
		return "", ErrNoSlackClient
	}

	_, ts, err := s.api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(reply.Text, false),
		slack.MsgOptionBlocks(Blocks(reply)...),
	)
	if err != nil {
		return "", fmt.Errorf("failed to post to %s: %w", channel, err)
	}
	return ts, nil
}

// Blocks renders a reply as Slack blocks.
func Blocks(reply search.Reply) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, reply.Text, false, false), nil, nil),
	}
	if reply.Action != nil {
		btn := slack.NewButtonBlockElement("open_results", "open_results",
			slack.NewTextBlockObject(slack.PlainTextType, reply.Action.Label, false, false))
		btn.URL = reply.Action.URL
		blocks = append(blocks, slack.NewActionBlock("results", btn))
	}
	return blocks
}
