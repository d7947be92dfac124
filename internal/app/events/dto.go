package events

import (
	"time"

	"github.com/google/uuid"

	"discoBot/internal/domain"
)

// ChatMessageDTO is the chat payload sent to feed subscribers.
type ChatMessageDTO struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"`
	GuildID   string `json:"guild_id,omitempty"`
	ChannelID string `json:"channel_id"`
	Channel   string `json:"channel,omitempty"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	IsPrivate bool   `json:"is_private"`
	IsBot     bool   `json:"is_bot"`
	Timestamp string `json:"timestamp"`
}

func NewChatMessageDTO(msg domain.Message) ChatMessageDTO {
	ts := msg.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return ChatMessageDTO{
		ID:        uuid.NewString(),
		Platform:  string(msg.Platform),
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		Channel:   msg.ChannelName,
		UserID:    msg.UserID,
		Username:  msg.Username,
		Text:      msg.Text,
		IsPrivate: msg.IsPrivate,
		IsBot:     msg.IsBot,
		Timestamp: ts.UTC().Format(time.RFC3339Nano),
	}
}

// ViolationDTO describes a removed message. The original text is not
// included.
type ViolationDTO struct {
	ID           string   `json:"id"`
	GuildID      string   `json:"guild_id"`
	ChannelID    string   `json:"channel_id"`
	Channel      string   `json:"channel"`
	UserID       string   `json:"user_id"`
	UserTag      string   `json:"user_tag"`
	MatchedTerms []string `json:"matched_terms"`
	Warnings     int      `json:"warnings"`
	MaxWarnings  int      `json:"max_warnings"`
	ReachedMax   bool     `json:"reached_max"`
	Timestamp    string   `json:"timestamp"`
}

func NewViolationDTO(rec domain.ViolationRecord) ViolationDTO {
	return ViolationDTO{
		ID:           uuid.NewString(),
		GuildID:      rec.GuildID,
		ChannelID:    rec.ChannelID,
		Channel:      rec.ChannelName,
		UserID:       rec.AuthorID,
		UserTag:      rec.AuthorTag,
		MatchedTerms: append([]string(nil), rec.MatchedTerms...),
		Warnings:     rec.Warnings,
		MaxWarnings:  rec.MaxWarnings,
		ReachedMax:   rec.ReachedMax,
		Timestamp:    rec.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

type PresenceDTO struct {
	Activity  string `json:"activity"`
	Timestamp string `json:"timestamp"`
}

type AppErrorDTO struct {
	Component string `json:"component"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func NewAppErrorDTO(component string, err error) AppErrorDTO {
	dto := AppErrorDTO{
		Component: component,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err != nil {
		dto.Message = err.Error()
	}
	return dto
}
