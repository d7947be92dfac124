package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/moderation"
)

const manageMessagesDenied = "❌ You need 'Manage Messages' permission to use this command."

var (
	ErrPermissionDenied = errors.New("commands: manage messages permission required")
	ErrUnresolvableUser = errors.New("commands: no user could be resolved")
)

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// Authorize reports ErrPermissionDenied unless the author may manage
// messages.
func Authorize(msg domain.Message) error {
	if msg.HasPermission(domain.PermManageMessages) {
		return nil
	}
	return ErrPermissionDenied
}

// guard retires the invoking message and reports whether the author may
// run a moderation command. A denial has already been answered.
func guard(ctx context.Context, cmdCtx *Context) (bool, error) {
	cmdCtx.Retire(ctx)
	if Authorize(cmdCtx.Message) == nil {
		return true, nil
	}
	return false, cmdCtx.Reply(ctx, manageMessagesDenied)
}

// moderatedFrom reports whether the ban list and ledger may be managed from
// platform p. The operator console shares them with Discord.
func moderatedFrom(p domain.Platform) bool {
	return p == domain.PlatformDiscord || p == domain.PlatformConsole
}

func totalField(e *domain.Embed, n int) {
	e.AddField("Total Banned Words", strconv.Itoa(n), true)
}

type AddBanCommand struct {
	prefix string
	svc    *moderation.Service
	now    func() time.Time
}

func NewAddBanCommand(prefix string, svc *moderation.Service) *AddBanCommand {
	return &AddBanCommand{prefix: prefix, svc: svc, now: time.Now}
}

func (c *AddBanCommand) Name() string                            { return "addban" }
func (c *AddBanCommand) Aliases() []string                       { return []string{"addword"} }
func (c *AddBanCommand) SupportsPlatform(p domain.Platform) bool { return moderatedFrom(p) }

func (c *AddBanCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if ok, err := guard(ctx, cmdCtx); !ok {
		return err
	}

	term := strings.ToLower(strings.Join(cmdCtx.Args, " "))
	total, err := c.svc.AddTerm(term)
	switch {
	case errors.Is(err, moderation.ErrEmptyTerm):
		return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Usage: `%saddban [word]`", c.prefix))
	case errors.Is(err, moderation.ErrDuplicateTerm):
		return cmdCtx.Reply(ctx, "❌ That word is already banned.")
	case err != nil:
		return err
	}

	e := domain.Embed{
		Title:       "✅ Banned Word Added",
		Description: fmt.Sprintf("Added `%s` to the banned words list.", strings.TrimSpace(term)),
		Color:       domain.ColorGreen,
		Timestamp:   c.now(),
	}
	totalField(&e, total)
	return cmdCtx.ReplyEmbed(ctx, e)
}

type RemoveBanCommand struct {
	prefix string
	svc    *moderation.Service
	now    func() time.Time
}

func NewRemoveBanCommand(prefix string, svc *moderation.Service) *RemoveBanCommand {
	return &RemoveBanCommand{prefix: prefix, svc: svc, now: time.Now}
}

func (c *RemoveBanCommand) Name() string      { return "removeban" }
func (c *RemoveBanCommand) Aliases() []string { return []string{"removeword"} }
func (c *RemoveBanCommand) SupportsPlatform(p domain.Platform) bool {
	return moderatedFrom(p)
}

func (c *RemoveBanCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if ok, err := guard(ctx, cmdCtx); !ok {
		return err
	}

	term := strings.ToLower(strings.Join(cmdCtx.Args, " "))
	if strings.TrimSpace(term) == "" {
		return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Usage: `%sremoveban [word]`", c.prefix))
	}

	total, err := c.svc.RemoveTerm(term)
	if errors.Is(err, moderation.ErrTermNotFound) {
		return cmdCtx.Reply(ctx, "❌ That word is not in the banned words list.")
	}
	if err != nil {
		return err
	}

	e := domain.Embed{
		Title:       "✅ Banned Word Removed",
		Description: fmt.Sprintf("Removed `%s` from the banned words list.", strings.TrimSpace(term)),
		Color:       domain.ColorGreen,
		Timestamp:   c.now(),
	}
	totalField(&e, total)
	return cmdCtx.ReplyEmbed(ctx, e)
}

type ListBanCommand struct {
	svc *moderation.Service
	now func() time.Time
}

func NewListBanCommand(svc *moderation.Service) *ListBanCommand {
	return &ListBanCommand{svc: svc, now: time.Now}
}

func (c *ListBanCommand) Name() string                            { return "listban" }
func (c *ListBanCommand) Aliases() []string                       { return []string{"banlist"} }
func (c *ListBanCommand) SupportsPlatform(p domain.Platform) bool { return moderatedFrom(p) }

func (c *ListBanCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if ok, err := guard(ctx, cmdCtx); !ok {
		return err
	}

	terms := c.svc.Terms().List()
	desc := "No banned words configured."
	if len(terms) > 0 {
		quoted := make([]string, len(terms))
		for i, t := range terms {
			quoted[i] = "`" + t + "`"
		}
		desc = strings.Join(quoted, ", ")
	}

	e := domain.Embed{
		Title:       "📋 Banned Words List",
		Description: desc,
		Color:       domain.ColorBlue,
		Timestamp:   c.now(),
	}
	e.AddField("Total", strconv.Itoa(len(terms)), true).
		AddField("Log Channel", "#"+c.svc.AuditChannelName(), true)
	return cmdCtx.ReplyEmbed(ctx, e)
}

type ClearWarningsCommand struct {
	prefix string
	svc    *moderation.Service
}

func NewClearWarningsCommand(prefix string, svc *moderation.Service) *ClearWarningsCommand {
	return &ClearWarningsCommand{prefix: prefix, svc: svc}
}

func (c *ClearWarningsCommand) Name() string      { return "clearwarnings" }
func (c *ClearWarningsCommand) Aliases() []string { return []string{"clearwarns"} }
func (c *ClearWarningsCommand) SupportsPlatform(p domain.Platform) bool {
	return moderatedFrom(p)
}

func (c *ClearWarningsCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if ok, err := guard(ctx, cmdCtx); !ok {
		return err
	}

	target, err := resolveTarget(cmdCtx)
	if err != nil {
		return cmdCtx.Reply(ctx, fmt.Sprintf("❌ Usage: `%sclearwarnings [@user]`", c.prefix))
	}

	prev := c.svc.ClearWarnings(target)
	return cmdCtx.Reply(ctx, fmt.Sprintf("✅ Cleared warnings for <@%s> (had %d).", target, prev))
}

// resolveTarget picks the user from the first mention, falling back to a
// <@id>, <@!id> or bare numeric argument.
func resolveTarget(cmdCtx *Context) (string, error) {
	if len(cmdCtx.Message.Mentions) > 0 {
		return cmdCtx.Message.Mentions[0], nil
	}
	if len(cmdCtx.Args) == 0 {
		return "", ErrUnresolvableUser
	}
	arg := cmdCtx.Args[0]
	if m := mentionPattern.FindStringSubmatch(arg); m != nil {
		return m[1], nil
	}
	if _, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return arg, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnresolvableUser, arg)
}
