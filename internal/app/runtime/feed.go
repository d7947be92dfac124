package runtime

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"discoBot/internal/app/events"
)

// broadcaster is the part of the ws server the feed needs.
type broadcaster interface {
	Broadcast(ctx context.Context, typ string, data any) error
}

var feedTopics = map[string]string{
	events.TopicChatMessage:         "chat",
	events.TopicModerationViolation: "violation",
	events.TopicPresence:            "presence",
	events.TopicAppError:            "error",
}

// forwardEvents streams bus events to websocket clients until ctx is done.
func forwardEvents(ctx context.Context, bus *events.Bus, out broadcaster, log *zap.Logger) {
	type item struct {
		typ     string
		payload any
	}
	merged := make(chan item)

	for topic, typ := range feedTopics {
		ch, unsubscribe := bus.Subscribe(topic)
		go func(typ string, ch <-chan any, unsubscribe func()) {
			defer unsubscribe()
			for {
				select {
				case <-ctx.Done():
					return
				case payload, ok := <-ch:
					if !ok {
						return
					}
					select {
					case merged <- item{typ: typ, payload: payload}:
					case <-ctx.Done():
						return
					}
				}
			}
		}(typ, ch, unsubscribe)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case it := <-merged:
			if err := out.Broadcast(ctx, it.typ, it.payload); err != nil && !errors.Is(err, context.Canceled) {
				log.Debug("feed broadcast failed", zap.String("type", it.typ), zap.Error(err))
			}
		}
	}
}
