package commands

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"discoBot/internal/domain"
)

const internalErrorReply = "❌ An error occurred while processing your command. Please try again."

type Router struct {
	prefix   string
	cmdIndex map[string]Command
	logger   *zap.Logger
}

func NewRouter(prefix string, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		prefix:   prefix,
		cmdIndex: make(map[string]Command),
		logger:   logger.Named("router"),
	}
}

func (r *Router) Prefix() string {
	return r.prefix
}

func (r *Router) Register(cmd Command) {
	r.cmdIndex[strings.ToLower(cmd.Name())] = cmd
	for _, alias := range cmd.Aliases() {
		r.cmdIndex[strings.ToLower(alias)] = cmd
	}
}

// IsReserved reports whether name is taken by a registered command or alias.
func (r *Router) IsReserved(name string) bool {
	_, ok := r.cmdIndex[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IsCommand reports whether text carries the command prefix.
func (r *Router) IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), r.prefix)
}

func (r *Router) Handle(ctx context.Context, msg domain.Message, out domain.OutgoingMessagePort) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if !strings.HasPrefix(text, r.prefix) {
		return nil
	}

	withoutPrefix := strings.TrimPrefix(text, r.prefix)
	parts := strings.Fields(withoutPrefix)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.cmdIndex[cmdName]
	if !ok {
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID,
			fmt.Sprintf("❌ Unknown command: `%s`\nType `%shelp` to see available commands.", cmdName, r.prefix))
	}

	if !cmd.SupportsPlatform(msg.Platform) {
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID, "❌ This command is not available here.")
	}

	ctxCmd := &Context{
		Message: msg,
		Out:     out,
		Raw:     withoutPrefix,
		Args:    args,
	}

	if err := cmd.Handle(ctx, ctxCmd); err != nil {
		r.logger.Error("command failed",
			zap.String("command", cmd.Name()),
			zap.String("user_id", msg.UserID),
			zap.Error(err),
		)
		return out.SendMessage(ctx, msg.Platform, msg.ChannelID, internalErrorReply)
	}
	return nil
}
