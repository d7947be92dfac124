package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"discoBot/internal/domain"
)

type postedEmbed struct {
	ChannelID string
	Embed     domain.Embed
}

type postedText struct {
	ChannelID string
	ID        string
	Text      string
}

type fakePlatform struct {
	mu sync.Mutex

	channels    map[string][]domain.Channel
	mgmtRoles   []string
	createErr   error
	dmErr       error
	deleteErr   error
	lookupCalls int

	deleted   []string
	deletedAt map[string]time.Time
	embeds    []postedEmbed
	posts     []postedText
	dms       map[string][]string
	creates   []domain.RestrictedChannelSpec
	nextID    int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		channels: make(map[string][]domain.Channel),
		dms:      make(map[string][]string),
	}
}

func (f *fakePlatform) DeleteMessage(_ context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	if f.deletedAt == nil {
		f.deletedAt = make(map[string]time.Time)
	}
	f.deletedAt[messageID] = time.Now()
	return nil
}

func (f *fakePlatform) PostMessage(_ context.Context, channelID, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("notice-%d", f.nextID)
	f.posts = append(f.posts, postedText{ChannelID: channelID, ID: id, Text: text})
	return id, nil
}

func (f *fakePlatform) SendEmbed(_ context.Context, channelID string, embed domain.Embed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, postedEmbed{ChannelID: channelID, Embed: embed})
	return nil
}

func (f *fakePlatform) SendDirectMessage(_ context.Context, userID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return f.dmErr
	}
	f.dms[userID] = append(f.dms[userID], text)
	return nil
}

func (f *fakePlatform) FindTextChannel(_ context.Context, guildID, name string) (*domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookupCalls++
	for _, ch := range f.channels[guildID] {
		if ch.Name == name {
			c := ch
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakePlatform) ManagementRoleIDs(context.Context, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mgmtRoles...), nil
}

func (f *fakePlatform) CreateRestrictedChannel(_ context.Context, guildID string, spec domain.RestrictedChannelSpec) (*domain.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates = append(f.creates, spec)
	ch := domain.Channel{ID: fmt.Sprintf("audit-%d", len(f.creates)), GuildID: guildID, Name: spec.Name}
	f.channels[guildID] = append(f.channels[guildID], ch)
	return &ch, nil
}

func (f *fakePlatform) snapshotDeleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

var errBlocked = errors.New("cannot send messages to this user")
