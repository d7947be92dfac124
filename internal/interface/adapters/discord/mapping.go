package discordadapter

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"discoBot/internal/domain"
)

func toDomainMessage(m *discordgo.Message, guild *discordgo.Guild, channelName string) domain.Message {
	msg := domain.Message{
		Platform:    domain.PlatformDiscord,
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		ChannelName: channelName,
		MessageID:   m.ID,
		Text:        m.Content,
		IsPrivate:   m.GuildID == "",
		CreatedAt:   m.Timestamp,
	}

	if m.Author != nil {
		msg.UserID = m.Author.ID
		msg.Username = m.Author.Username
		msg.UserTag = m.Author.String()
		msg.AvatarURL = m.Author.AvatarURL("")
		msg.IsBot = m.Author.Bot
	}

	for _, u := range m.Mentions {
		if u != nil {
			msg.Mentions = append(msg.Mentions, u.ID)
		}
	}

	if guild != nil {
		msg.GuildName = guild.Name
		var roleIDs []string
		if m.Member != nil {
			roleIDs = m.Member.Roles
		}
		msg.Roles = roleNames(guild.Roles, roleIDs)

		perms := memberPermissions(guild, roleIDs, msg.UserID)
		msg.IsPlatformAdmin = perms&discordgo.PermissionAdministrator != 0
		msg.CanManageMessages = perms&discordgo.PermissionManageMessages != 0
	}

	return msg
}

func roleNames(roles []*discordgo.Role, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	held := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		held[id] = struct{}{}
	}
	var names []string
	for _, r := range roles {
		if _, ok := held[r.ID]; ok {
			names = append(names, r.Name)
		}
	}
	return names
}

// memberPermissions computes guild-level permissions from the @everyone role
// plus the member's roles. Owners and administrators get everything.
func memberPermissions(guild *discordgo.Guild, roleIDs []string, userID string) int64 {
	if guild.OwnerID != "" && guild.OwnerID == userID {
		return discordgo.PermissionAll
	}

	held := make(map[string]struct{}, len(roleIDs)+1)
	held[guild.ID] = struct{}{}
	for _, id := range roleIDs {
		held[id] = struct{}{}
	}

	var perms int64
	for _, r := range guild.Roles {
		if _, ok := held[r.ID]; ok {
			perms |= r.Permissions
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}

func findTextChannel(channels []*discordgo.Channel, guildID, name string) *domain.Channel {
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && strings.EqualFold(ch.Name, name) {
			return &domain.Channel{ID: ch.ID, GuildID: guildID, Name: ch.Name}
		}
	}
	return nil
}

// managementRoleIDs lists roles that can manage messages, skipping @everyone.
func managementRoleIDs(roles []*discordgo.Role, guildID string) []string {
	var ids []string
	for _, r := range roles {
		if r.ID == guildID {
			continue
		}
		if r.Permissions&(discordgo.PermissionManageMessages|discordgo.PermissionAdministrator) != 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func restrictedOverwrites(guildID string, allowRoleIDs []string) []*discordgo.PermissionOverwrite {
	overwrites := []*discordgo.PermissionOverwrite{{
		ID:   guildID,
		Type: discordgo.PermissionOverwriteTypeRole,
		Deny: discordgo.PermissionViewChannel,
	}}
	for _, id := range allowRoleIDs {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    id,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionSendMessages,
		})
	}
	return overwrites
}

func bulkDeletable(ids []string, now time.Time) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		ts, err := discordgo.SnowflakeTimestamp(id)
		if err != nil || now.Sub(ts) >= bulkDeleteMaxAge {
			continue
		}
		out = append(out, id)
	}
	return out
}

func toDiscordEmbed(e domain.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer, IconURL: e.FooterIcon}
	}
	if e.ThumbnailURL != "" {
		out.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	if !e.Timestamp.IsZero() {
		out.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	return out
}
