// Package moderation implements the banned-term filter: matching, bypass
// roles, the per-user warning ledger, audit channel provisioning and author
// notices.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"discoBot/internal/domain"
)

var (
	ErrEmptyTerm      = errors.New("moderation: empty term")
	ErrDuplicateTerm  = errors.New("moderation: term already banned")
	ErrTermNotFound   = errors.New("moderation: term not banned")
	ErrProvisioning   = errors.New("moderation: audit channel unavailable")
	ErrDeliveryFailed = errors.New("moderation: direct notice not delivered")
)

const (
	DefaultAuditChannel = "mod-logs"
	DefaultMaxWarnings  = 3

	noticeTTL        = 5 * time.Second
	maxWarnNoticeTTL = 8 * time.Second
)

type Config struct {
	Enabled          bool
	AuditChannelName string
	BannedTerms      []string
	BypassRoles      []string
	MaxWarnings      int

	// Lifetimes of the in-channel fallback notice. Zero means the defaults
	// of 5s, and 8s once the author reached the maximum.
	NoticeTTL        time.Duration
	MaxWarnNoticeTTL time.Duration
}

// ViolationHook observes every filtered message.
type ViolationHook func(ctx context.Context, rec domain.ViolationRecord)

type Service struct {
	cfg         Config
	platform    domain.ModerationPlatform
	terms       *TermSet
	ledger      *Ledger
	provisioner *Provisioner
	scheduler   *Scheduler
	logger      *zap.Logger
	now         func() time.Time

	hooksMu sync.RWMutex
	hooks   []ViolationHook
	metrics *Metrics
}

func NewService(cfg Config, platform domain.ModerationPlatform, logger *zap.Logger) *Service {
	if cfg.AuditChannelName == "" {
		cfg.AuditChannelName = DefaultAuditChannel
	}
	if cfg.MaxWarnings <= 0 {
		cfg.MaxWarnings = DefaultMaxWarnings
	}
	if cfg.NoticeTTL <= 0 {
		cfg.NoticeTTL = noticeTTL
	}
	if cfg.MaxWarnNoticeTTL <= 0 {
		cfg.MaxWarnNoticeTTL = maxWarnNoticeTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BypassRoles = append([]string(nil), cfg.BypassRoles...)

	return &Service{
		cfg:         cfg,
		platform:    platform,
		terms:       NewTermSet(cfg.BannedTerms),
		ledger:      NewLedger(),
		provisioner: NewProvisioner(platform),
		scheduler:   NewScheduler(),
		logger:      logger.Named("moderation"),
		now:         time.Now,
	}
}

func (s *Service) Terms() *TermSet          { return s.terms }
func (s *Service) Ledger() *Ledger          { return s.ledger }
func (s *Service) Scheduler() *Scheduler    { return s.scheduler }
func (s *Service) AuditChannelName() string { return s.cfg.AuditChannelName }
func (s *Service) MaxWarnings() int         { return s.cfg.MaxWarnings }
func (s *Service) Enabled() bool            { return s != nil && s.cfg.Enabled }

func (s *Service) SetMetrics(m *Metrics) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.metrics = m
}

func (s *Service) RegisterHook(h ViolationHook) {
	if h == nil {
		return
	}
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, h)
}

// Close cancels pending notice deletions.
func (s *Service) Close() {
	if s == nil {
		return
	}
	s.scheduler.Close()
}

// Filter runs msg through the word filter. It reports true when the message
// was removed, in which case the caller must stop processing it.
func (s *Service) Filter(ctx context.Context, msg domain.Message) bool {
	if s == nil || !msg.InGuild() {
		return false
	}
	if IsBypassed(msg.Roles, s.cfg.BypassRoles) {
		return false
	}

	found := s.terms.Match(msg.Text)
	if len(found) == 0 {
		return false
	}

	log := s.logger.With(
		zap.String("guild_id", msg.GuildID),
		zap.String("channel_id", msg.ChannelID),
		zap.String("user_id", msg.UserID),
		zap.Strings("terms", found),
	)

	if err := s.platform.DeleteMessage(ctx, msg.ChannelID, msg.MessageID); err != nil {
		log.Warn("delete flagged message", zap.Error(err))
	}

	count := s.ledger.Increment(msg.UserID)
	rec := newViolationRecord(msg, found, count, s.cfg.MaxWarnings, s.now())
	log.Info("banned term detected",
		zap.Int("warnings", rec.Warnings),
		zap.Bool("reached_max", rec.ReachedMax),
	)

	s.postAudit(ctx, rec, log)
	s.notifyAuthor(ctx, rec, msg.GuildName, log)
	s.emit(ctx, rec)

	return true
}

func (s *Service) postAudit(ctx context.Context, rec domain.ViolationRecord, log *zap.Logger) {
	metrics := s.currentMetrics()

	ch, created, err := s.provisioner.Resolve(ctx, rec.GuildID, s.cfg.AuditChannelName)
	if err != nil {
		log.Warn("audit channel unavailable, skipping audit entry", zap.Error(err))
		if metrics != nil {
			metrics.AuditSkipped.Inc()
		}
		return
	}
	if created {
		log.Info("audit channel created", zap.String("audit_channel_id", ch.ID))
		if metrics != nil {
			metrics.ChannelsCreated.Inc()
		}
	}

	if err := s.platform.SendEmbed(ctx, ch.ID, AuditEmbed(rec)); err != nil {
		log.Warn("post audit entry", zap.Error(err))
		if metrics != nil {
			metrics.AuditSkipped.Inc()
		}
	}
}

func (s *Service) notifyAuthor(ctx context.Context, rec domain.ViolationRecord, guildName string, log *zap.Logger) {
	err := s.sendDirect(ctx, rec, guildName)
	if err == nil {
		return
	}
	log.Debug("falling back to channel notice", zap.Error(err))
	if metrics := s.currentMetrics(); metrics != nil {
		metrics.NoticeFallbacks.Inc()
	}

	noticeID, err := s.platform.PostMessage(ctx, rec.ChannelID, ChannelNotice(rec))
	if err != nil {
		log.Warn("post channel notice", zap.Error(err))
		return
	}

	ttl := s.cfg.NoticeTTL
	if rec.ReachedMax {
		ttl = s.cfg.MaxWarnNoticeTTL
	}
	channelID := rec.ChannelID
	s.scheduler.After(ttl, func(ctx context.Context) {
		if err := s.platform.DeleteMessage(ctx, channelID, noticeID); err != nil {
			log.Debug("remove channel notice", zap.Error(err))
		}
	})
}

func (s *Service) sendDirect(ctx context.Context, rec domain.ViolationRecord, guildName string) error {
	if err := s.platform.SendDirectMessage(ctx, rec.AuthorID, DirectNotice(rec, guildName)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

func (s *Service) currentMetrics() *Metrics {
	s.hooksMu.RLock()
	defer s.hooksMu.RUnlock()
	return s.metrics
}

func (s *Service) emit(ctx context.Context, rec domain.ViolationRecord) {
	s.hooksMu.RLock()
	hooks := append([]ViolationHook(nil), s.hooks...)
	metrics := s.metrics
	s.hooksMu.RUnlock()

	metrics.observe(rec.MatchedTerms, rec.ReachedMax)
	for _, h := range hooks {
		h(ctx, rec)
	}
}

// AddTerm bans term. Matching is case-insensitive so the term is stored
// lowercase.
func (s *Service) AddTerm(term string) (int, error) {
	return s.terms.Add(term)
}

func (s *Service) RemoveTerm(term string) (int, error) {
	return s.terms.Remove(term)
}

// ClearWarnings resets the user's count and returns what it was.
func (s *Service) ClearWarnings(userID string) int {
	return s.ledger.Clear(userID)
}
