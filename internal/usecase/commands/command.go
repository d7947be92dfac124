package commands

import (
	"context"

	"discoBot/internal/domain"
)

type Command interface {
	Name() string
	Aliases() []string
	SupportsPlatform(p domain.Platform) bool
	Handle(ctx context.Context, c *Context) error
}

type Context struct {
	Message domain.Message
	Out     domain.OutgoingMessagePort

	Raw  string
	Args []string
}

// Reply sends text to the channel the command came from.
func (c *Context) Reply(ctx context.Context, text string) error {
	return c.Out.SendMessage(ctx, c.Message.Platform, c.Message.ChannelID, text)
}

func (c *Context) ReplyEmbed(ctx context.Context, embed domain.Embed) error {
	return c.Out.SendEmbed(ctx, c.Message.Platform, c.Message.ChannelID, embed)
}

// Retire deletes the invoking message. Failures are ignored.
func (c *Context) Retire(ctx context.Context) {
	if c.Message.MessageID == "" {
		return
	}
	_ = c.Out.DeleteMessage(ctx, c.Message.Platform, c.Message.ChannelID, c.Message.MessageID)
}
