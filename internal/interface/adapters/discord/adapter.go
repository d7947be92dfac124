// Package discordadapter connects the bot to the Discord gateway.
package discordadapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"discoBot/internal/domain"
)

type Config struct {
	Token string
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type Adapter struct {
	cfg     Config
	logger  *zap.Logger
	session *discordgo.Session

	mu      sync.RWMutex
	handler MessageHandler
	ready   bool
}

func NewAdapter(cfg Config, logger *zap.Logger) (*Adapter, error) {
	if cfg.Token == "" {
		return nil, errors.New("discord: empty bot token")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &Adapter{
		cfg:     cfg,
		logger:  logger.Named("discord"),
		session: session,
	}, nil
}

func (a *Adapter) SetHandler(h MessageHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = h
}

// Guild exposes the guild-level operations used by moderation, purge and
// presence rotation.
func (a *Adapter) Guild() *GuildOps {
	return &GuildOps{session: a.session}
}

// Start opens the gateway and blocks until ctx is cancelled.
func (a *Adapter) Start(ctx context.Context) error {
	removeReady := a.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.logger.Info("connected", zap.String("user", r.User.String()), zap.Int("guilds", len(r.Guilds)))
	})
	removeCreate := a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		a.onMessageCreate(ctx, s, m)
	})
	defer removeReady()
	defer removeCreate()

	if err := a.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	a.mu.Lock()
	a.ready = true
	a.mu.Unlock()

	<-ctx.Done()

	a.mu.Lock()
	a.ready = false
	a.mu.Unlock()
	if err := a.session.Close(); err != nil {
		a.logger.Warn("close gateway", zap.Error(err))
	}
	return ctx.Err()
}

func (a *Adapter) onMessageCreate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}

	a.mu.RLock()
	handler := a.handler
	a.mu.RUnlock()
	if handler == nil {
		return
	}

	var guild *discordgo.Guild
	if m.GuildID != "" {
		g, err := s.State.Guild(m.GuildID)
		if err != nil {
			g, err = s.Guild(m.GuildID, discordgo.WithContext(ctx))
		}
		if err != nil {
			a.logger.Debug("guild lookup failed", zap.String("guild_id", m.GuildID), zap.Error(err))
		}
		guild = g
	}

	channelName := ""
	if ch, err := s.State.Channel(m.ChannelID); err == nil {
		channelName = ch.Name
	} else if ch, err := s.Channel(m.ChannelID, discordgo.WithContext(ctx)); err == nil {
		channelName = ch.Name
	}

	msg := toDomainMessage(m.Message, guild, channelName)
	if err := handler(ctx, msg); err != nil {
		a.logger.Warn("handler error", zap.String("channel_id", msg.ChannelID), zap.Error(err))
	}
}

func (a *Adapter) checkPlatform(platform domain.Platform) error {
	if platform != domain.PlatformDiscord {
		return fmt.Errorf("discord adapter does not support platform %s", platform)
	}
	return nil
}

func (a *Adapter) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if err := a.checkPlatform(platform); err != nil {
		return err
	}
	_, err := a.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

func (a *Adapter) SendEmbed(ctx context.Context, platform domain.Platform, channelID string, embed domain.Embed) error {
	if err := a.checkPlatform(platform); err != nil {
		return err
	}
	_, err := a.session.ChannelMessageSendEmbed(channelID, toDiscordEmbed(embed), discordgo.WithContext(ctx))
	return err
}

func (a *Adapter) DeleteMessage(ctx context.Context, platform domain.Platform, channelID, messageID string) error {
	if err := a.checkPlatform(platform); err != nil {
		return err
	}
	return a.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

var _ domain.OutgoingMessagePort = (*Adapter)(nil)
