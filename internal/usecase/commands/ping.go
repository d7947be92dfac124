package commands

import (
	"context"
	"fmt"
	"time"

	"discoBot/internal/domain"
)

type PingCommand struct {
	now func() time.Time
}

func NewPingCommand() *PingCommand {
	return &PingCommand{now: time.Now}
}

func (c *PingCommand) Name() string {
	return "ping"
}

func (c *PingCommand) Aliases() []string {
	return []string{}
}

func (c *PingCommand) SupportsPlatform(p domain.Platform) bool {
	return true
}

func (c *PingCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	cmdCtx.Retire(ctx)

	var latency time.Duration
	if created := cmdCtx.Message.CreatedAt; !created.IsZero() {
		latency = c.now().Sub(created)
		if latency < 0 {
			latency = 0
		}
	}

	return cmdCtx.Reply(ctx, fmt.Sprintf("🏓 Pong! Latency: %dms", latency.Milliseconds()))
}
