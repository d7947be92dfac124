// Package handle_message routes every incoming message through the word
// filter, the product shortcut and the command router, in that order.
package handle_message

import (
	"context"

	"go.uber.org/zap"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/commands"
)

// Filter is the moderation step run before routing.
type Filter interface {
	Enabled() bool
	Filter(ctx context.Context, msg domain.Message) bool
}

// Shortcut consumes unprefixed messages such as "qtrs 5".
type Shortcut interface {
	Shortcut(ctx context.Context, msg domain.Message, out domain.OutgoingMessagePort) (bool, error)
}

type Interactor struct {
	router   *commands.Router
	out      domain.OutgoingMessagePort
	filter   Filter
	shortcut Shortcut
	logger   *zap.Logger
}

func NewInteractor(out domain.OutgoingMessagePort, router *commands.Router, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		router: router,
		out:    out,
		logger: logger.Named("handle_message"),
	}
}

func (uc *Interactor) SetFilter(f Filter) {
	uc.filter = f
}

func (uc *Interactor) SetShortcut(s Shortcut) {
	uc.shortcut = s
}

// Handle runs msg through moderation, the product shortcut and finally the
// command router. A filtered message goes no further.
func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) error {
	if msg.IsBot {
		return nil
	}

	isCommand := uc.router.IsCommand(msg.Text)

	if !isCommand && uc.filter != nil && uc.filter.Enabled() && msg.InGuild() {
		if uc.filter.Filter(ctx, msg) {
			return nil
		}
	}

	if !isCommand && uc.shortcut != nil {
		handled, err := uc.shortcut.Shortcut(ctx, msg, uc.out)
		if err != nil {
			uc.logger.Warn("product shortcut failed", zap.String("user_id", msg.UserID), zap.Error(err))
		}
		if handled {
			return nil
		}
	}

	return uc.router.Handle(ctx, msg, uc.out)
}
