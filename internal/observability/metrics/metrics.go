package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luminasmiles/lead-relay/internal/delivery"
)

// SubmissionMetrics exposes counters/histograms for lead submission flows.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	channelTotal     *prometheus.CounterVec
	channelLatency   *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "total",
			Help:      "Total lead submissions by result",
		}, []string{"result"}),
		channelTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "channel_attempts_total",
			Help:      "Total channel attempts by channel and failure kind",
		}, []string{"channel", "failure_kind"}),
		channelLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadrelay",
			Subsystem: "submissions",
			Name:      "channel_latency_seconds",
			Help:      "Latency of channel delivery attempts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.channelTotal, m.channelLatency)
	return m
}

// ObserveSubmission records the overall result of one logical submission
// (accepted, rejected, spam, duplicate).
func (m *SubmissionMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// ObserveChannel records one channel attempt outcome.
func (m *SubmissionMetrics) ObserveChannel(o delivery.Outcome) {
	if m == nil {
		return
	}
	m.channelTotal.WithLabelValues(string(o.Channel), string(o.FailureKind)).Inc()
	m.channelLatency.WithLabelValues(string(o.Channel)).Observe(float64(o.DurationMS) / 1000)
}
