package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"discoBot/internal/domain"
)

type SportsKind int

const (
	SportsFixtures SportsKind = iota
	SportsTable
	SportsLive
	SportsNext
	SportsHelp
)

const (
	leagueLogoURL   = "https://media.api-sports.io/football/leagues/39.png"
	poweredBy       = "Powered by API-Football"
	nextFetchCount  = 10
	nextShownCount  = 8
	tableHalfLength = 10
)

type sportsRoute struct {
	name    string
	aliases []string
	loading string
	failure string
}

var sportsRoutes = map[SportsKind]sportsRoute{
	SportsFixtures: {
		name:    "fixtures",
		aliases: []string{"pl", "premierleague"},
		loading: "⚽ Fetching today's Premier League fixtures...",
		failure: "❌ Failed to fetch Premier League fixtures. Please try again later.",
	},
	SportsTable: {
		name:    "table",
		aliases: []string{"pltable"},
		loading: "📊 Fetching Premier League table...",
		failure: "❌ Failed to fetch Premier League table. Please try again later.",
	},
	SportsLive: {
		name:    "live",
		aliases: []string{"livescores"},
		loading: "⚽ Fetching live Premier League matches...",
		failure: "❌ Failed to fetch live Premier League matches. Please try again later.",
	},
	SportsNext: {
		name:    "next",
		aliases: []string{"upcoming"},
		loading: "⚽ Fetching next Premier League fixtures...",
		failure: "❌ Failed to fetch next Premier League fixtures. Please try again later.",
	},
	SportsHelp: {
		name:    "sportshelp",
		aliases: []string{"football"},
	},
}

type SportsOptions struct {
	Prefix   string
	Season   int
	Location *time.Location
}

// SportsCommand serves one of the football data commands.
type SportsCommand struct {
	kind   SportsKind
	route  sportsRoute
	svc    domain.SportsDataService
	poster TransientPoster
	opts   SportsOptions
	logger *zap.Logger
	now    func() time.Time
}

func NewSportsCommand(kind SportsKind, svc domain.SportsDataService, poster TransientPoster, opts SportsOptions, logger *zap.Logger) *SportsCommand {
	if opts.Location == nil {
		opts.Location = ukLocation()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SportsCommand{
		kind:   kind,
		route:  sportsRoutes[kind],
		svc:    svc,
		poster: poster,
		opts:   opts,
		logger: logger.Named("sports"),
		now:    time.Now,
	}
}

// NewSportsCommands builds the full sports command set.
func NewSportsCommands(svc domain.SportsDataService, poster TransientPoster, opts SportsOptions, logger *zap.Logger) []Command {
	kinds := []SportsKind{SportsFixtures, SportsTable, SportsLive, SportsNext, SportsHelp}
	out := make([]Command, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, NewSportsCommand(k, svc, poster, opts, logger))
	}
	return out
}

func (c *SportsCommand) Name() string {
	return c.route.name
}

func (c *SportsCommand) Aliases() []string {
	return c.route.aliases
}

func (c *SportsCommand) SupportsPlatform(p domain.Platform) bool {
	return true
}

func (c *SportsCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	cmdCtx.Retire(ctx)

	if c.kind == SportsHelp {
		return cmdCtx.ReplyEmbed(ctx, SportsHelpEmbed(c.opts.Prefix, c.now()))
	}

	channelID := cmdCtx.Message.ChannelID
	loadingID := c.postLoading(ctx, channelID)

	embed, empty, err := c.render(ctx)

	if loadingID != "" {
		_ = c.poster.DeleteMessage(ctx, channelID, loadingID)
	}

	if err != nil {
		c.logger.Warn("fetch football data", zap.String("command", c.route.name), zap.Error(err))
		return cmdCtx.Reply(ctx, c.route.failure)
	}
	if empty != "" {
		return cmdCtx.Reply(ctx, empty)
	}
	return cmdCtx.ReplyEmbed(ctx, embed)
}

func (c *SportsCommand) postLoading(ctx context.Context, channelID string) string {
	if c.poster == nil || c.route.loading == "" {
		return ""
	}
	id, err := c.poster.PostMessage(ctx, channelID, c.route.loading)
	if err != nil {
		return ""
	}
	return id
}

// render fetches the data for the command. A non-empty second value is the
// reply to send instead of the embed.
func (c *SportsCommand) render(ctx context.Context) (domain.Embed, string, error) {
	now := c.now()
	loc := c.opts.Location

	switch c.kind {
	case SportsFixtures:
		fixtures, err := c.svc.FixturesOn(ctx, now.In(loc))
		if err != nil {
			return domain.Embed{}, "", err
		}
		if len(fixtures) == 0 {
			return domain.Embed{}, "📅 No Premier League fixtures scheduled for today.", nil
		}
		return FixturesEmbed(fixtures, loc, now), "", nil

	case SportsTable:
		standings, err := c.svc.Standings(ctx)
		if err != nil {
			return domain.Embed{}, "", err
		}
		if len(standings) == 0 {
			return domain.Embed{}, "❌ No Premier League standings available.", nil
		}
		return TableEmbed(standings, c.opts.Season, now), "", nil

	case SportsLive:
		fixtures, err := c.svc.LiveFixtures(ctx)
		if err != nil {
			return domain.Embed{}, "", err
		}
		if len(fixtures) == 0 {
			return domain.Embed{}, "📺 No Premier League matches are currently live.", nil
		}
		return LiveEmbed(fixtures, now), "", nil

	case SportsNext:
		fixtures, err := c.svc.NextFixtures(ctx, nextFetchCount)
		if err != nil {
			return domain.Embed{}, "", err
		}
		if len(fixtures) == 0 {
			return domain.Embed{}, "📅 No upcoming Premier League fixtures found.", nil
		}
		return NextEmbed(fixtures, loc, now), "", nil
	}

	return domain.Embed{}, "", fmt.Errorf("commands: unknown sports command %d", c.kind)
}

func ukLocation() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		return time.UTC
	}
	return loc
}

func goals(g *int) int {
	if g == nil {
		return 0
	}
	return *g
}

func FixturesEmbed(fixtures []domain.Fixture, loc *time.Location, now time.Time) domain.Embed {
	e := domain.Embed{
		Title:      "⚽ Today's Premier League Fixtures",
		Color:      domain.ColorPurple,
		Timestamp:  now,
		Footer:     poweredBy,
		FooterIcon: leagueLogoURL,
	}
	for _, f := range fixtures {
		var status string
		switch f.Status {
		case "FT":
			status = fmt.Sprintf("**FT** %d - %d", goals(f.HomeGoals), goals(f.AwayGoals))
		case "1H", "2H", "HT", "LIVE":
			status = fmt.Sprintf("**LIVE %d'** %d - %d", f.Elapsed, goals(f.HomeGoals), goals(f.AwayGoals))
		case "NS":
			status = fmt.Sprintf("**%s** UK Time\n📍 %s", f.Kickoff.In(loc).Format("15:04"), f.Venue)
		default:
			status = fmt.Sprintf("**%s** %d - %d", f.Status, goals(f.HomeGoals), goals(f.AwayGoals))
		}
		e.AddField(f.HomeTeam+" vs "+f.AwayTeam, status, true)
	}
	return e
}

func positionIndicator(rank int) string {
	switch {
	case rank <= 4:
		return "🟢"
	case rank == 5:
		return "🟡"
	case rank == 6:
		return "🟠"
	case rank >= 18:
		return "🔴"
	}
	return ""
}

func TableEmbed(standings []domain.Standing, season int, now time.Time) domain.Embed {
	e := domain.Embed{
		Title:      fmt.Sprintf("📊 Premier League Table %d/%02d", season, (season+1)%100),
		Color:      domain.ColorPurple,
		Timestamp:  now,
		Footer:     poweredBy,
		FooterIcon: leagueLogoURL,
	}

	var top, bottom strings.Builder
	for i, s := range standings {
		line := fmt.Sprintf("%s **%d.** %s\n📊 %dP • %dpts • %+dGD\n\n",
			positionIndicator(s.Rank), s.Rank, s.Team, s.Played, s.Points, s.GoalDifference)
		if i < tableHalfLength {
			top.WriteString(line)
		} else {
			bottom.WriteString(line)
		}
	}

	e.AddField("Positions 1-10", top.String(), true)
	if bottom.Len() > 0 {
		e.AddField("Positions 11-20", bottom.String(), true)
	}
	e.AddField("🏆 Legend", "🟢 Champions League\n🟡 Europa League\n🟠 Conference League\n🔴 Relegation", false)
	return e
}

func LiveEmbed(fixtures []domain.Fixture, now time.Time) domain.Embed {
	e := domain.Embed{
		Title:      "🔴 LIVE Premier League Matches",
		Color:      domain.ColorRed,
		Timestamp:  now,
		Footer:     "Live • Updates every 15 seconds",
		FooterIcon: leagueLogoURL,
	}
	for _, f := range fixtures {
		var status string
		switch f.Status {
		case "HT":
			status = "**HALF TIME**"
		case "1H":
			status = fmt.Sprintf("**%d' 1ST HALF**", f.Elapsed)
		case "2H":
			status = fmt.Sprintf("**%d' 2ND HALF**", f.Elapsed)
		default:
			status = fmt.Sprintf("**%d' LIVE**", f.Elapsed)
		}
		name := fmt.Sprintf("%s %d - %d %s", f.HomeTeam, goals(f.HomeGoals), goals(f.AwayGoals), f.AwayTeam)
		e.AddField(name, status, true)
	}
	return e
}

func NextEmbed(fixtures []domain.Fixture, loc *time.Location, now time.Time) domain.Embed {
	e := domain.Embed{
		Title:      "📅 Next Premier League Fixtures",
		Color:      domain.ColorPurple,
		Timestamp:  now,
		Footer:     poweredBy,
		FooterIcon: leagueLogoURL,
	}
	if len(fixtures) > nextShownCount {
		fixtures = fixtures[:nextShownCount]
	}
	for _, f := range fixtures {
		kickoff := f.Kickoff.In(loc)
		e.AddField(f.HomeTeam+" vs "+f.AwayTeam,
			fmt.Sprintf("📅 %s\n⏰ %s UK", kickoff.Format("Mon 2 Jan"), kickoff.Format("15:04")), true)
	}
	return e
}

func SportsHelpEmbed(prefix string, now time.Time) domain.Embed {
	p := func(name string) string { return "`" + prefix + name + "`" }

	e := domain.Embed{
		Title:        "⚽ Sports Commands - Premier League Coverage",
		Description:  "Professional football data powered by API-Football",
		Color:        domain.ColorPurple,
		ThumbnailURL: leagueLogoURL,
		Footer:       "Try any command above to get started!",
		Timestamp:    now,
	}
	e.AddField("📅 **Today's Fixtures**",
		p("fixtures")+" / "+p("pl")+" / "+p("premierleague")+"\nShow today's Premier League matches with kick-off times and venues", false).
		AddField("📊 **League Table**",
			p("table")+" / "+p("pltable")+"\nCurrent Premier League standings with:\n🟢 Champions League spots\n🟡 Europa League\n🟠 Conference League\n🔴 Relegation zone", false).
		AddField("🔴 **Live Scores**",
			p("live")+" / "+p("livescores")+"\nCurrent match scores with the minute and match status", false).
		AddField("📅 **Upcoming Fixtures**",
			p("next")+" / "+p("upcoming")+fmt.Sprintf("\nNext %d Premier League matches with dates and times", nextShownCount), false).
		AddField("🏆 **Data Source**", poweredBy, false)
	return e
}
