package domain

import "time"

type Platform string

const (
	PlatformDiscord Platform = "discord"
	PlatformConsole Platform = "console"
)

type Message struct {
	Platform    Platform
	GuildID     string
	ChannelID   string
	ChannelName string
	GuildName   string
	MessageID   string
	UserID      string
	Username    string
	UserTag     string
	AvatarURL   string
	Text        string
	IsPrivate   bool
	IsBot       bool
	CreatedAt   time.Time

	// Role names held by the author in the guild.
	Roles []string
	// User IDs mentioned in the message, in order.
	Mentions []string

	// Flags filled in by the adapter from the platform permission set.
	IsPlatformAdmin   bool
	CanManageMessages bool
}

// InGuild reports whether the message was posted in a guild text channel.
func (m Message) InGuild() bool {
	return m.GuildID != "" && !m.IsPrivate
}
