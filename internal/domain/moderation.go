package domain

import "time"

// Channel is a guild channel handle.
type Channel struct {
	ID      string
	GuildID string
	Name    string
}

// RestrictedChannelSpec describes a text channel hidden from @everyone and
// visible to a fixed set of roles.
type RestrictedChannelSpec struct {
	Name         string
	Topic        string
	AllowRoleIDs []string
}

// ViolationRecord captures one filtered message. It is rendered into the
// audit entry and the author notice, then dropped.
type ViolationRecord struct {
	GuildID      string
	AuthorID     string
	AuthorTag    string
	AvatarURL    string
	ChannelID    string
	ChannelName  string
	MatchedTerms []string
	Content      string
	Warnings     int
	MaxWarnings  int
	ReachedMax   bool
	Timestamp    time.Time
}
