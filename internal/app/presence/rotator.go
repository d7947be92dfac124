// Package presence rotates the bot's visible activity.
package presence

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"discoBot/internal/domain"
)

const DefaultInterval = 15 * time.Second

type Rotator struct {
	updater    domain.PresenceUpdater
	activities []string
	interval   time.Duration
	logger     *zap.Logger
	pick       func(n int) int
	onChange   func(activity string)
}

func NewRotator(updater domain.PresenceUpdater, activities []string, interval time.Duration, logger *zap.Logger) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rotator{
		updater:    updater,
		activities: append([]string(nil), activities...),
		interval:   interval,
		logger:     logger.Named("presence"),
		pick:       rand.IntN,
	}
}

// OnChange registers a callback run after each successful update.
func (r *Rotator) OnChange(fn func(activity string)) {
	r.onChange = fn
}

// Run sets an activity immediately and then once per interval until ctx is
// done. It returns nil on cancellation.
func (r *Rotator) Run(ctx context.Context) error {
	if len(r.activities) == 0 || r.updater == nil {
		return nil
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.rotate(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.rotate(ctx)
		}
	}
}

func (r *Rotator) rotate(ctx context.Context) {
	activity := r.activities[r.pick(len(r.activities))]
	if err := r.updater.SetActivity(ctx, activity); err != nil {
		r.logger.Debug("set activity", zap.String("activity", activity), zap.Error(err))
		return
	}
	if r.onChange != nil {
		r.onChange(activity)
	}
}
