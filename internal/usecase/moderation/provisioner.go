package moderation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"discoBot/internal/domain"
)

const auditChannelTopic = "Moderation logs - banned words"

// Provisioner finds the audit channel of a guild, creating it on first use.
// Lookups are never cached. Creation is serialized per guild and channel name
// so two violations arriving together cannot create duplicate channels.
type Provisioner struct {
	platform domain.ModerationPlatform

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProvisioner(platform domain.ModerationPlatform) *Provisioner {
	return &Provisioner{
		platform: platform,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (p *Provisioner) lockFor(guildID, name string) *sync.Mutex {
	key := guildID + "/" + strings.ToLower(name)

	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	return l
}

// Resolve returns the channel named name in guildID. created reports whether
// this call had to create it. Any failure is wrapped in ErrProvisioning.
func (p *Provisioner) Resolve(ctx context.Context, guildID, name string) (ch *domain.Channel, created bool, err error) {
	if p == nil || p.platform == nil {
		return nil, false, fmt.Errorf("%w: no platform", ErrProvisioning)
	}
	if guildID == "" || strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("%w: guild and channel name required", ErrProvisioning)
	}

	l := p.lockFor(guildID, name)
	l.Lock()
	defer l.Unlock()

	ch, err = p.platform.FindTextChannel(ctx, guildID, name)
	if err != nil {
		return nil, false, fmt.Errorf("%w: lookup %q: %v", ErrProvisioning, name, err)
	}
	if ch != nil {
		return ch, false, nil
	}

	roles, err := p.platform.ManagementRoleIDs(ctx, guildID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: management roles: %v", ErrProvisioning, err)
	}

	ch, err = p.platform.CreateRestrictedChannel(ctx, guildID, domain.RestrictedChannelSpec{
		Name:         name,
		Topic:        auditChannelTopic,
		AllowRoleIDs: roles,
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: create %q: %v", ErrProvisioning, name, err)
	}
	if ch == nil {
		return nil, false, fmt.Errorf("%w: create %q returned no channel", ErrProvisioning, name)
	}
	return ch, true, nil
}
