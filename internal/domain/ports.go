package domain

import "context"

// OutgoingMessagePort is what command handlers reply through.
type OutgoingMessagePort interface {
	SendMessage(ctx context.Context, platform Platform, channelID, text string) error
	SendEmbed(ctx context.Context, platform Platform, channelID string, embed Embed) error
	DeleteMessage(ctx context.Context, platform Platform, channelID, messageID string) error
}

// ModerationPlatform is the set of guild operations the word filter needs.
type ModerationPlatform interface {
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	// PostMessage sends text to a channel and returns the new message ID.
	PostMessage(ctx context.Context, channelID, text string) (string, error)
	SendEmbed(ctx context.Context, channelID string, embed Embed) error
	SendDirectMessage(ctx context.Context, userID, text string) error

	// FindTextChannel returns nil, nil when no text channel has that name.
	FindTextChannel(ctx context.Context, guildID, name string) (*Channel, error)
	// ManagementRoleIDs lists roles currently holding Manage Messages.
	ManagementRoleIDs(ctx context.Context, guildID string) ([]string, error)
	CreateRestrictedChannel(ctx context.Context, guildID string, spec RestrictedChannelSpec) (*Channel, error)
}

// MessageHistory backs the purge command.
type MessageHistory interface {
	RecentMessageIDs(ctx context.Context, channelID string, limit int) ([]string, error)
	BulkDelete(ctx context.Context, channelID string, messageIDs []string) (int, error)
}

// PresenceUpdater sets the bot's visible activity.
type PresenceUpdater interface {
	SetActivity(ctx context.Context, activity string) error
}
