package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"discoBot/internal/domain"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))
	ch, unsubscribe := bus.Subscribe(TopicChatMessage)

	bus.Publish(TopicChatMessage, "hello")
	bus.Publish(TopicPresence, "ignored")

	select {
	case got := <-ch:
		assert.Equal(t, "hello", got)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
	bus.Publish(TopicChatMessage, "after")
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := NewBus(nil)
	_, unsubscribe := bus.Subscribe(TopicModerationViolation)
	defer unsubscribe()

	for i := 0; i < defaultBufferSize+5; i++ {
		bus.Publish(TopicModerationViolation, i)
	}
	assert.Equal(t, uint64(5), bus.Dropped(TopicModerationViolation))
}

func TestBusClose(t *testing.T) {
	bus := NewBus(nil)
	ch, unsubscribe := bus.Subscribe(TopicChatMessage)
	bus.Close()

	_, open := <-ch
	assert.False(t, open)
	unsubscribe()
	bus.Publish(TopicChatMessage, "x")

	late, _ := bus.Subscribe(TopicChatMessage)
	_, open = <-late
	assert.False(t, open)
}

func TestViolationDTO(t *testing.T) {
	rec := domain.ViolationRecord{
		GuildID:      "g1",
		AuthorID:     "u1",
		AuthorTag:    "alice",
		ChannelName:  "general",
		MatchedTerms: []string{"spam"},
		Content:      "buy spam",
		Warnings:     3,
		MaxWarnings:  3,
		ReachedMax:   true,
		Timestamp:    time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC),
	}
	dto := NewViolationDTO(rec)
	require.NotEmpty(t, dto.ID)
	assert.Equal(t, "u1", dto.UserID)
	assert.Equal(t, []string{"spam"}, dto.MatchedTerms)
	assert.True(t, dto.ReachedMax)
	assert.Equal(t, "2024-08-17T12:00:00Z", dto.Timestamp)

	chat := NewChatMessageDTO(domain.Message{Platform: domain.PlatformDiscord, Text: "hi"})
	assert.Equal(t, "discord", chat.Platform)
	assert.NotEmpty(t, chat.Timestamp)
}

func TestAppErrorDTO(t *testing.T) {
	dto := NewAppErrorDTO("discord", errors.New("boom"))
	assert.Equal(t, "discord", dto.Component)
	assert.Equal(t, "boom", dto.Message)
	assert.NotEmpty(t, dto.Timestamp)

	assert.Empty(t, NewAppErrorDTO("console", nil).Message)
}
