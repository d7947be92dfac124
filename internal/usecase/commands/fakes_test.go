package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"discoBot/internal/domain"
)

type fakeOut struct {
	mu      sync.Mutex
	texts   []string
	embeds  []domain.Embed
	deleted []string
}

func (f *fakeOut) SendMessage(_ context.Context, _ domain.Platform, _ string, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeOut) SendEmbed(_ context.Context, _ domain.Platform, _ string, e domain.Embed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeds = append(f.embeds, e)
	return nil
}

func (f *fakeOut) DeleteMessage(_ context.Context, _ domain.Platform, _ string, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeOut) lastText() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakePoster struct {
	mu      sync.Mutex
	posts   []string
	deleted []string
	postErr error
	n       int
}

func (f *fakePoster) PostMessage(_ context.Context, _ string, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return "", f.postErr
	}
	f.n++
	f.posts = append(f.posts, text)
	return fmt.Sprintf("post-%d", f.n), nil
}

func (f *fakePoster) DeleteMessage(_ context.Context, _ string, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakePoster) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fakeHistory struct {
	ids       []string
	fetchErr  error
	deleteErr error
	limit     int
}

func (f *fakeHistory) RecentMessageIDs(_ context.Context, _ string, limit int) ([]string, error) {
	f.limit = limit
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if limit < len(f.ids) {
		return f.ids[:limit], nil
	}
	return f.ids, nil
}

func (f *fakeHistory) BulkDelete(_ context.Context, _ string, ids []string) (int, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return len(ids), nil
}

type fakeSports struct {
	fixtures  []domain.Fixture
	live      []domain.Fixture
	next      []domain.Fixture
	standings []domain.Standing
	err       error
	day       time.Time
	nextCount int
}

func (f *fakeSports) FixturesOn(_ context.Context, day time.Time) ([]domain.Fixture, error) {
	f.day = day
	return f.fixtures, f.err
}

func (f *fakeSports) LiveFixtures(context.Context) ([]domain.Fixture, error) {
	return f.live, f.err
}

func (f *fakeSports) NextFixtures(_ context.Context, count int) ([]domain.Fixture, error) {
	f.nextCount = count
	return f.next, f.err
}

func (f *fakeSports) Standings(context.Context) ([]domain.Standing, error) {
	return f.standings, f.err
}

func discordMessage(text string) domain.Message {
	return domain.Message{
		Platform:  domain.PlatformDiscord,
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		UserID:    "u1",
		Username:  "alice",
		Text:      text,
	}
}

func intPtr(v int) *int { return &v }
