package discordadapter

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discoBot/internal/domain"
)

func testGuild() *discordgo.Guild {
	return &discordgo.Guild{
		ID:      "g1",
		Name:    "Warehouse",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Name: "@everyone", Permissions: discordgo.PermissionSendMessages},
			{ID: "r-admin", Name: "Admin", Permissions: discordgo.PermissionAdministrator},
			{ID: "r-mod", Name: "Moderator", Permissions: discordgo.PermissionManageMessages},
			{ID: "r-member", Name: "Member", Permissions: discordgo.PermissionViewChannel},
		},
	}
}

func TestToDomainMessage(t *testing.T) {
	created := time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC)
	m := &discordgo.Message{
		ID:        "m1",
		ChannelID: "c1",
		GuildID:   "g1",
		Content:   "hello <@42>",
		Timestamp: created,
		Author:    &discordgo.User{ID: "u1", Username: "alice", Discriminator: "1234"},
		Member:    &discordgo.Member{Roles: []string{"r-mod", "r-member"}},
		Mentions:  []*discordgo.User{{ID: "42"}},
	}

	msg := toDomainMessage(m, testGuild(), "general")
	assert.Equal(t, domain.PlatformDiscord, msg.Platform)
	assert.Equal(t, "Warehouse", msg.GuildName)
	assert.Equal(t, "general", msg.ChannelName)
	assert.Equal(t, "alice#1234", msg.UserTag)
	assert.NotEmpty(t, msg.AvatarURL)
	assert.Equal(t, []string{"Moderator", "Member"}, msg.Roles)
	assert.Equal(t, []string{"42"}, msg.Mentions)
	assert.Equal(t, created, msg.CreatedAt)
	assert.True(t, msg.CanManageMessages)
	assert.False(t, msg.IsPlatformAdmin)
	assert.True(t, msg.InGuild())
}

func TestToDomainMessageDirect(t *testing.T) {
	m := &discordgo.Message{
		ID:        "m2",
		ChannelID: "dm1",
		Content:   "hi",
		Author:    &discordgo.User{ID: "u2", Username: "bot", Bot: true},
	}
	msg := toDomainMessage(m, nil, "")
	assert.True(t, msg.IsPrivate)
	assert.True(t, msg.IsBot)
	assert.False(t, msg.InGuild())
	assert.Empty(t, msg.Roles)
	assert.False(t, msg.CanManageMessages)
}

func TestMemberPermissions(t *testing.T) {
	g := testGuild()

	assert.Equal(t, int64(discordgo.PermissionAll), memberPermissions(g, nil, "owner"))
	assert.Equal(t, int64(discordgo.PermissionAll), memberPermissions(g, []string{"r-admin"}, "u1"))

	perms := memberPermissions(g, []string{"r-member"}, "u1")
	assert.NotZero(t, perms&discordgo.PermissionSendMessages)
	assert.Zero(t, perms&discordgo.PermissionManageMessages)
}

func TestManagementRolesAndOverwrites(t *testing.T) {
	g := testGuild()
	assert.Equal(t, []string{"r-admin", "r-mod"}, managementRoleIDs(g.Roles, g.ID))

	ow := restrictedOverwrites("g1", []string{"r-mod"})
	require.Len(t, ow, 2)
	assert.Equal(t, "g1", ow[0].ID)
	assert.Equal(t, int64(discordgo.PermissionViewChannel), ow[0].Deny)
	assert.Equal(t, discordgo.PermissionOverwriteTypeRole, ow[1].Type)
	assert.Equal(t, int64(discordgo.PermissionViewChannel|discordgo.PermissionSendMessages), ow[1].Allow)
}

func TestFindTextChannel(t *testing.T) {
	channels := []*discordgo.Channel{
		{ID: "v1", Name: "mod-logs", Type: discordgo.ChannelTypeGuildVoice},
		{ID: "t1", Name: "Mod-Logs", Type: discordgo.ChannelTypeGuildText},
	}
	ch := findTextChannel(channels, "g1", "mod-logs")
	require.NotNil(t, ch)
	assert.Equal(t, "t1", ch.ID)
	assert.Nil(t, findTextChannel(channels, "g1", "audit"))
}

func snowflakeAt(ts time.Time) string {
	return strconv.FormatInt((ts.UnixMilli()-1420070400000)<<22, 10)
}

func TestBulkDeletable(t *testing.T) {
	now := time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC)
	fresh := snowflakeAt(now.Add(-time.Hour))
	old := snowflakeAt(now.Add(-15 * 24 * time.Hour))

	assert.Equal(t, []string{fresh}, bulkDeletable([]string{fresh, old, "not-a-snowflake"}, now))
}

func TestToDiscordEmbed(t *testing.T) {
	ts := time.Date(2024, 8, 17, 12, 0, 0, 0, time.UTC)
	e := domain.Embed{
		Title:        "t",
		Description:  "d",
		Color:        domain.ColorRed,
		Footer:       "f",
		FooterIcon:   "https://example.com/i.png",
		ThumbnailURL: "https://example.com/t.png",
		Timestamp:    ts,
	}
	e.AddField("a", "1", true)

	out := toDiscordEmbed(e)
	assert.Equal(t, "t", out.Title)
	assert.Equal(t, domain.ColorRed, out.Color)
	require.Len(t, out.Fields, 1)
	assert.True(t, out.Fields[0].Inline)
	assert.Equal(t, "https://example.com/i.png", out.Footer.IconURL)
	assert.Equal(t, "https://example.com/t.png", out.Thumbnail.URL)
	assert.Equal(t, "2024-08-17T12:00:00Z", out.Timestamp)

	bare := toDiscordEmbed(domain.Embed{Title: "x"})
	assert.Nil(t, bare.Footer)
	assert.Nil(t, bare.Thumbnail)
	assert.Empty(t, bare.Timestamp)
}
