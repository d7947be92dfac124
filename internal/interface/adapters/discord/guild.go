package discordadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"discoBot/internal/domain"
)

// bulkDeleteMaxAge is the age limit Discord puts on bulk deletion.
const bulkDeleteMaxAge = 14 * 24 * time.Hour

// GuildOps implements the moderation, history and presence ports on top of
// a discordgo session.
type GuildOps struct {
	session *discordgo.Session
	now     func() time.Time
}

func (g *GuildOps) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return g.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

func (g *GuildOps) PostMessage(ctx context.Context, channelID, text string) (string, error) {
	m, err := g.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

func (g *GuildOps) SendEmbed(ctx context.Context, channelID string, embed domain.Embed) error {
	_, err := g.session.ChannelMessageSendEmbed(channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx))
	return err
}

func (g *GuildOps) SendDirectMessage(ctx context.Context, userID, text string) error {
	ch, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord: open dm channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSend(ch.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send dm: %w", err)
	}
	return nil
}

func (g *GuildOps) FindTextChannel(ctx context.Context, guildID, name string) (*domain.Channel, error) {
	channels, err := g.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: list channels: %w", err)
	}
	return findTextChannel(channels, guildID, name), nil
}

func (g *GuildOps) ManagementRoleIDs(ctx context.Context, guildID string) ([]string, error) {
	roles, err := g.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: list roles: %w", err)
	}
	return managementRoleIDs(roles, guildID), nil
}

func (g *GuildOps) CreateRestrictedChannel(ctx context.Context, guildID string, spec domain.RestrictedChannelSpec) (*domain.Channel, error) {
	ch, err := g.session.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 spec.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                spec.Topic,
		PermissionOverwrites: restrictedOverwrites(guildID, spec.AllowRoleIDs),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: create channel %s: %w", spec.Name, err)
	}
	return &domain.Channel{ID: ch.ID, GuildID: guildID, Name: ch.Name}, nil
}

func (g *GuildOps) RecentMessageIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	msgs, err := g.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("discord: fetch messages: %w", err)
	}
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// BulkDelete removes the messages Discord still allows to bulk delete and
// reports how many were removed.
func (g *GuildOps) BulkDelete(ctx context.Context, channelID string, messageIDs []string) (int, error) {
	now := time.Now
	if g.now != nil {
		now = g.now
	}
	ids := bulkDeletable(messageIDs, now())

	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
		if err := g.session.ChannelMessageDelete(channelID, ids[0], discordgo.WithContext(ctx)); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err := g.session.ChannelMessagesBulkDelete(channelID, ids, discordgo.WithContext(ctx)); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// SetActivity shows activity as a "Playing" status with do-not-disturb.
func (g *GuildOps) SetActivity(_ context.Context, activity string) error {
	return g.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusDoNotDisturb),
		Activities: []*discordgo.Activity{{
			Name: activity,
			Type: discordgo.ActivityTypeGame,
		}},
	})
}

var (
	_ domain.ModerationPlatform = (*GuildOps)(nil)
	_ domain.MessageHistory     = (*GuildOps)(nil)
	_ domain.PresenceUpdater    = (*GuildOps)(nil)
)
