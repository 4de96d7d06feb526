package notifications

import (
	"context"
	"fmt"
)

// Sender delivers a job synchronously.
type Sender interface {
	Send(ctx context.Context, job Job) error
}

// BotAPI is the subset of the Discord bot client used for delivery.
type BotAPI interface {
	CollabRequest(ctx context.Context, giveawaySlug, channelID, mentionRoleID string) error
	GiveawayUpdated(ctx context.Context, giveawaySlug, channelID, messageID string) error
}

// BotSender maps jobs onto bot API calls.
type BotSender struct {
	bot BotAPI
}

func NewBotSender(bot BotAPI) *BotSender {
	return &BotSender{bot: bot}
}

func (s *BotSender) Send(ctx context.Context, job Job) error {
	switch job.Kind {
	case KindCollabRequest:
		return s.bot.CollabRequest(ctx, job.GiveawaySlug, job.ChannelID, job.MentionRoleID)
	case KindGiveawayUpdated:
		return s.bot.GiveawayUpdated(ctx, job.GiveawaySlug, job.ChannelID, job.MessageID)
	}
	return fmt.Errorf("unknown notification type: %q", job.Kind)
}
