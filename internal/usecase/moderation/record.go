package moderation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/rivo/uniseg"

	"discoBot/internal/domain"
)

// MaxContentLength is the longest original message an audit entry carries,
// counted in UTF-16 code units like the embed field limit.
const MaxContentLength = 1024

const ellipsis = "..."

// Truncate shortens s to at most limit UTF-16 code units, replacing the tail
// with an ellipsis. Cuts fall on grapheme cluster boundaries.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf16Len(s) <= limit {
		return s
	}
	budget := limit - len(ellipsis)
	if budget < 0 {
		return ellipsis[:limit]
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		n := utf16Len(cluster)
		if used+n > budget {
			break
		}
		used += n
		b.WriteString(cluster)
	}
	b.WriteString(ellipsis)
	return b.String()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

func newViolationRecord(msg domain.Message, terms []string, count, maxWarnings int, now time.Time) domain.ViolationRecord {
	tag := msg.UserTag
	if tag == "" {
		tag = msg.Username
	}
	return domain.ViolationRecord{
		GuildID:      msg.GuildID,
		AuthorID:     msg.UserID,
		AuthorTag:    tag,
		AvatarURL:    msg.AvatarURL,
		ChannelID:    msg.ChannelID,
		ChannelName:  msg.ChannelName,
		MatchedTerms: append([]string(nil), terms...),
		Content:      Truncate(msg.Text, MaxContentLength),
		Warnings:     count,
		MaxWarnings:  maxWarnings,
		ReachedMax:   maxWarnings > 0 && count >= maxWarnings,
		Timestamp:    now,
	}
}

func warningProgress(rec domain.ViolationRecord) string {
	return fmt.Sprintf("%d/%d", rec.Warnings, rec.MaxWarnings)
}

// AuditEmbed renders the entry posted to the audit channel.
func AuditEmbed(rec domain.ViolationRecord) domain.Embed {
	channel := rec.ChannelName
	if channel == "" {
		channel = rec.ChannelID
	}
	content := rec.Content
	if content == "" {
		content = "(empty)"
	}

	embed := domain.Embed{
		Title:        "🚫 Banned Word Detected",
		Color:        domain.ColorRed,
		ThumbnailURL: rec.AvatarURL,
		Timestamp:    rec.Timestamp,
	}
	embed.AddField("User", fmt.Sprintf("%s (%s)", rec.AuthorTag, rec.AuthorID), true).
		AddField("Channel", "#"+channel, true).
		AddField("Banned Word(s)", strings.Join(rec.MatchedTerms, ", "), true).
		AddField("Warnings", warningProgress(rec), true)
	if rec.ReachedMax {
		embed.Color = domain.ColorDarkRed
		embed.AddField("⚠️ Max warnings reached", "This user has reached the maximum number of warnings.", false)
	}
	embed.AddField("Original Message", content, false)
	return embed
}

// DirectNotice is the private message sent to the author.
func DirectNotice(rec domain.ViolationRecord, guildName string) string {
	where := "the server"
	if guildName != "" {
		where = guildName
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🚫 Your message in #%s on %s was removed because it contained banned content (%s).\n",
		displayChannel(rec), where, strings.Join(rec.MatchedTerms, ", "))
	fmt.Fprintf(&b, "Warnings: %s", warningProgress(rec))
	if rec.ReachedMax {
		b.WriteString("\n⚠️ You have reached the maximum number of warnings. Further violations may lead to removal from the server.")
	}
	return b.String()
}

// ChannelNotice is the in-channel fallback used when the author cannot be
// reached privately.
func ChannelNotice(rec domain.ViolationRecord) string {
	if rec.ReachedMax {
		return fmt.Sprintf("⚠️ <@%s>, your message contained banned content and has been removed. You have reached the maximum number of warnings (%s).",
			rec.AuthorID, warningProgress(rec))
	}
	return fmt.Sprintf("🚫 <@%s>, your message contained banned content and has been removed. Warnings: %s.",
		rec.AuthorID, warningProgress(rec))
}

func displayChannel(rec domain.ViolationRecord) string {
	if rec.ChannelName != "" {
		return rec.ChannelName
	}
	return rec.ChannelID
}
