package moderation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"discoBot/internal/domain"
)

func testMessage(text string) domain.Message {
	return domain.Message{
		Platform:    domain.PlatformDiscord,
		GuildID:     "g1",
		GuildName:   "Warlocks",
		ChannelID:   "c1",
		ChannelName: "general",
		MessageID:   "m1",
		UserID:      "u1",
		Username:    "someone",
		UserTag:     "someone#0001",
		Text:        text,
		Roles:       []string{"Member"},
	}
}

func newTestService(t *testing.T, fp *fakePlatform, cfg Config) *Service {
	t.Helper()
	if cfg.BannedTerms == nil {
		cfg.BannedTerms = []string{"spam"}
	}
	if cfg.BypassRoles == nil {
		cfg.BypassRoles = []string{"Admin", "Moderator"}
	}
	cfg.Enabled = true
	svc := NewService(cfg, fp, zaptest.NewLogger(t))
	t.Cleanup(svc.Close)
	return svc
}

func TestNewServiceDefaults(t *testing.T) {
	svc := NewService(Config{}, newFakePlatform(), nil)
	defer svc.Close()

	assert.Equal(t, "mod-logs", svc.AuditChannelName())
	assert.Equal(t, 3, svc.MaxWarnings())
	assert.Equal(t, 5*time.Second, svc.cfg.NoticeTTL)
	assert.Equal(t, 8*time.Second, svc.cfg.MaxWarnNoticeTTL)
	assert.False(t, svc.Enabled())
}

func TestFilterBypassRoleLeavesMessageUntouched(t *testing.T) {
	fp := newFakePlatform()
	svc := newTestService(t, fp, Config{})

	msg := testMessage("buy spam now")
	msg.Roles = []string{"Member", "Moderator"}

	assert.False(t, svc.Filter(context.Background(), msg))
	assert.Empty(t, fp.deleted)
	assert.Empty(t, fp.embeds)
	assert.Equal(t, 0, svc.Ledger().Get("u1"))
}

func TestFilterCleanMessage(t *testing.T) {
	fp := newFakePlatform()
	svc := newTestService(t, fp, Config{})

	assert.False(t, svc.Filter(context.Background(), testMessage("hello there")))
	assert.Empty(t, fp.deleted)
	assert.Equal(t, 0, svc.Ledger().Get("u1"))
}

func TestFilterIgnoresDirectMessages(t *testing.T) {
	fp := newFakePlatform()
	svc := newTestService(t, fp, Config{})

	msg := testMessage("spam")
	msg.GuildID = ""
	msg.IsPrivate = true
	assert.False(t, svc.Filter(context.Background(), msg))
}

func TestFilterRemovesAndCountsUpToMax(t *testing.T) {
	fp := newFakePlatform()
	fp.mgmtRoles = []string{"r-mod"}
	svc := newTestService(t, fp, Config{MaxWarnings: 3})

	var mu sync.Mutex
	var records []domain.ViolationRecord
	svc.RegisterHook(func(_ context.Context, rec domain.ViolationRecord) {
		mu.Lock()
		records = append(records, rec)
		mu.Unlock()
	})

	for i := 1; i <= 3; i++ {
		assert.True(t, svc.Filter(context.Background(), testMessage("buy SPAM now")))
		assert.Equal(t, i, svc.Ledger().Get("u1"))
	}

	assert.Equal(t, []string{"c1/m1", "c1/m1", "c1/m1"}, fp.deleted)

	// One audit channel, three audit entries.
	require.Len(t, fp.creates, 1)
	require.Len(t, fp.embeds, 3)
	for _, e := range fp.embeds {
		assert.Equal(t, "audit-1", e.ChannelID)
	}

	require.Len(t, records, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{records[0].Warnings, records[1].Warnings, records[2].Warnings})
	assert.False(t, records[0].ReachedMax)
	assert.False(t, records[1].ReachedMax)
	assert.True(t, records[2].ReachedMax)
	assert.Equal(t, []string{"spam"}, records[2].MatchedTerms)

	lastEmbed := fp.embeds[2].Embed
	assert.Equal(t, domain.ColorDarkRed, lastEmbed.Color)

	dms := fp.dms["u1"]
	require.Len(t, dms, 3)
	assert.NotContains(t, dms[0], "maximum number of warnings")
	assert.Contains(t, dms[2], "maximum number of warnings")
	assert.Empty(t, fp.posts)
}

func TestFilterWarningCountAfterClear(t *testing.T) {
	fp := newFakePlatform()
	svc := newTestService(t, fp, Config{})

	svc.Filter(context.Background(), testMessage("spam"))
	svc.Filter(context.Background(), testMessage("spam"))
	assert.Equal(t, 2, svc.ClearWarnings("u1"))
	assert.Equal(t, 0, svc.Ledger().Get("u1"))

	svc.Filter(context.Background(), testMessage("spam"))
	assert.Equal(t, 1, svc.Ledger().Get("u1"))
}

func TestFilterProvisioningFailureStillFilters(t *testing.T) {
	fp := newFakePlatform()
	fp.createErr = assert.AnError
	svc := newTestService(t, fp, Config{})

	assert.True(t, svc.Filter(context.Background(), testMessage("spam")))
	assert.Equal(t, []string{"c1/m1"}, fp.deleted)
	assert.Equal(t, 1, svc.Ledger().Get("u1"))
	assert.Empty(t, fp.embeds)
	assert.Len(t, fp.dms["u1"], 1)
}

func TestFilterDeleteFailureIsNotFatal(t *testing.T) {
	fp := newFakePlatform()
	fp.deleteErr = assert.AnError
	svc := newTestService(t, fp, Config{})

	assert.True(t, svc.Filter(context.Background(), testMessage("spam")))
	assert.Equal(t, 1, svc.Ledger().Get("u1"))
	assert.Len(t, fp.embeds, 1)
}

func TestFilterFallsBackToTransientChannelNotice(t *testing.T) {
	fp := newFakePlatform()
	fp.dmErr = errBlocked
	svc := newTestService(t, fp, Config{
		MaxWarnings:      2,
		NoticeTTL:        20 * time.Millisecond,
		MaxWarnNoticeTTL: 80 * time.Millisecond,
	})

	start := time.Now()
	assert.True(t, svc.Filter(context.Background(), testMessage("spam")))
	assert.True(t, svc.Filter(context.Background(), testMessage("spam")))

	require.Len(t, fp.posts, 2)
	assert.Equal(t, "c1", fp.posts[0].ChannelID)
	assert.Contains(t, fp.posts[0].Text, "<@u1>")
	assert.Contains(t, fp.posts[1].Text, "maximum number of warnings")

	svc.Scheduler().Wait()

	deleted := fp.snapshotDeleted()
	assert.Contains(t, deleted, "c1/notice-1")
	assert.Contains(t, deleted, "c1/notice-2")

	fp.mu.Lock()
	normal := fp.deletedAt["notice-1"].Sub(start)
	escalated := fp.deletedAt["notice-2"].Sub(start)
	fp.mu.Unlock()
	assert.GreaterOrEqual(t, normal, 20*time.Millisecond)
	assert.GreaterOrEqual(t, escalated, 80*time.Millisecond)
}

func TestCloseCancelsPendingNoticeRemoval(t *testing.T) {
	fp := newFakePlatform()
	fp.dmErr = errBlocked
	svc := NewService(Config{BannedTerms: []string{"spam"}}, fp, zaptest.NewLogger(t))

	assert.True(t, svc.Filter(context.Background(), testMessage("spam")))
	assert.Equal(t, 1, svc.Scheduler().Pending())

	svc.Close()
	assert.NotContains(t, fp.snapshotDeleted(), "c1/notice-1")
}

func TestFilterMetrics(t *testing.T) {
	fp := newFakePlatform()
	fp.dmErr = errBlocked
	svc := newTestService(t, fp, Config{MaxWarnings: 1})

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc.SetMetrics(m)

	svc.Filter(context.Background(), testMessage("spam"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Violations.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TermHits.WithLabelValues("spam")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NoticeFallbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChannelsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.AuditSkipped))
}

func TestSendDirectWrapsDeliveryFailure(t *testing.T) {
	fp := newFakePlatform()
	fp.dmErr = errBlocked
	svc := newTestService(t, fp, Config{})

	err := svc.sendDirect(context.Background(), domain.ViolationRecord{AuthorID: "u1", MaxWarnings: 3, Warnings: 1}, "Warlocks")
	assert.ErrorIs(t, err, ErrDeliveryFailed)

	fp.dmErr = nil
	require.NoError(t, svc.sendDirect(context.Background(), domain.ViolationRecord{AuthorID: "u1", MaxWarnings: 3, Warnings: 1}, "Warlocks"))
	assert.Len(t, fp.dms["u1"], 1)
}
