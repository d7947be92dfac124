package outs

import (
	"context"
	"fmt"
	"sync"

	"discoBot/internal/domain"
)

// Sender is implemented by each outgoing adapter (Discord, the ws console).
type Sender interface {
	SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error
	SendEmbed(ctx context.Context, platform domain.Platform, channelID string, embed domain.Embed) error
	DeleteMessage(ctx context.Context, platform domain.Platform, channelID, messageID string) error
}

// MultiSender routes replies to the sender registered for the message's
// platform.
type MultiSender struct {
	mu      sync.RWMutex
	senders map[domain.Platform]Sender
}

func NewMultiSender() *MultiSender {
	return &MultiSender{
		senders: make(map[domain.Platform]Sender),
	}
}

func (m *MultiSender) Register(platform domain.Platform, sender Sender) {
	if m == nil || sender == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.senders[platform] = sender
}

func (m *MultiSender) Unregister(platform domain.Platform) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.senders, platform)
}

func (m *MultiSender) sender(platform domain.Platform) (Sender, error) {
	if m == nil {
		return nil, fmt.Errorf("outs: no multi sender configured")
	}
	m.mu.RLock()
	sender, ok := m.senders[platform]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("outs: no sender registered for platform %s", platform)
	}
	return sender, nil
}

func (m *MultiSender) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	sender, err := m.sender(platform)
	if err != nil {
		return err
	}
	return sender.SendMessage(ctx, platform, channelID, text)
}

func (m *MultiSender) SendEmbed(ctx context.Context, platform domain.Platform, channelID string, embed domain.Embed) error {
	sender, err := m.sender(platform)
	if err != nil {
		return err
	}
	return sender.SendEmbed(ctx, platform, channelID, embed)
}

func (m *MultiSender) DeleteMessage(ctx context.Context, platform domain.Platform, channelID, messageID string) error {
	sender, err := m.sender(platform)
	if err != nil {
		return err
	}
	return sender.DeleteMessage(ctx, platform, channelID, messageID)
}

var _ domain.OutgoingMessagePort = (*MultiSender)(nil)
