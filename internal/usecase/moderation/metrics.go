package moderation

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Violations      *prometheus.CounterVec
	TermHits        *prometheus.CounterVec
	NoticeFallbacks prometheus.Counter
	AuditSkipped    prometheus.Counter
	ChannelsCreated prometheus.Counter
}

// NewMetrics registers the moderation collectors on reg. A nil reg yields
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "discobot",
			Subsystem: "moderation",
			Name:      "violations_total",
			Help:      "Messages removed by the word filter.",
		}, []string{"reached_max"}),
		TermHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "discobot",
			Subsystem: "moderation",
			Name:      "term_hits_total",
			Help:      "Banned term matches, by term.",
		}, []string{"term"}),
		NoticeFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "discobot",
			Subsystem: "moderation",
			Name:      "notice_fallbacks_total",
			Help:      "Author notices posted in-channel because the direct message failed.",
		}),
		AuditSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "discobot",
			Subsystem: "moderation",
			Name:      "audit_skipped_total",
			Help:      "Violations whose audit entry could not be posted.",
		}),
		ChannelsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "discobot",
			Subsystem: "moderation",
			Name:      "audit_channels_created_total",
			Help:      "Audit channels provisioned by the bot.",
		}),
	}
}

func (m *Metrics) observe(terms []string, reachedMax bool) {
	if m == nil {
		return
	}
	m.Violations.WithLabelValues(strconv.FormatBool(reachedMax)).Inc()
	for _, term := range terms {
		m.TermHits.WithLabelValues(term).Inc()
	}
}
