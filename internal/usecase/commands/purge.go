package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/moderation"
)

const (
	maxPurge       = 100
	purgeNoticeTTL = 3 * time.Second
)

// TransientPoster posts messages that are removed again later.
type TransientPoster interface {
	PostMessage(ctx context.Context, channelID, text string) (string, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

type PurgeCommand struct {
	history   domain.MessageHistory
	poster    TransientPoster
	scheduler *moderation.Scheduler
	logger    *zap.Logger
	ttl       time.Duration
}

func NewPurgeCommand(history domain.MessageHistory, poster TransientPoster, scheduler *moderation.Scheduler, logger *zap.Logger) *PurgeCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurgeCommand{
		history:   history,
		poster:    poster,
		scheduler: scheduler,
		logger:    logger.Named("purge"),
		ttl:       purgeNoticeTTL,
	}
}

func (c *PurgeCommand) Name() string {
	return "clear"
}

func (c *PurgeCommand) Aliases() []string {
	return []string{"purge"}
}

func (c *PurgeCommand) SupportsPlatform(p domain.Platform) bool {
	return p == domain.PlatformDiscord
}

func (c *PurgeCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	msg := cmdCtx.Message

	if Authorize(msg) != nil {
		return cmdCtx.Reply(ctx, manageMessagesDenied)
	}

	amount := 0
	if len(cmdCtx.Args) > 0 {
		amount, _ = strconv.Atoi(cmdCtx.Args[0])
	}
	if amount < 1 || amount > maxPurge {
		return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Please specify a number between 1 and %d.", maxPurge))
	}

	cmdCtx.Retire(ctx)

	ids, err := c.history.RecentMessageIDs(ctx, msg.ChannelID, amount)
	if err == nil {
		var deleted int
		deleted, err = c.history.BulkDelete(ctx, msg.ChannelID, ids)
		if err == nil {
			c.confirm(ctx, msg.ChannelID, deleted)
			return nil
		}
	}

	c.logger.Warn("purge failed", zap.String("channel_id", msg.ChannelID), zap.Error(err))
	return cmdCtx.Reply(ctx, "❌ Failed to delete messages. Make sure I have the proper permissions.")
}

func (c *PurgeCommand) confirm(ctx context.Context, channelID string, deleted int) {
	id, err := c.poster.PostMessage(ctx, channelID, fmt.Sprintf("✅ Deleted %d messages.", deleted))
	if err != nil {
		c.logger.Debug("post purge confirmation", zap.Error(err))
		return
	}
	c.scheduler.After(c.ttl, func(ctx context.Context) {
		_ = c.poster.DeleteMessage(ctx, channelID, id)
	})
}
