package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for check-in and reminder activity.
type Metrics struct {
	checkins      *prometheus.CounterVec
	lagScores     prometheus.Histogram
	milestones    *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// Default returns the instance registered with the global registry. It is
// created once so repeated server construction in one process does not
// panic on duplicate registration.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics registers the collectors with reg and panics on
// registration errors.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	checkins := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifelag",
			Name:      "checkins_total",
			Help:      "Check-ins stored, by drift category.",
		},
		[]string{"category"},
	)
	lagScores := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lifelag",
			Name:      "lag_score",
			Help:      "Distribution of computed lag scores.",
			Buckets:   []float64{10, 20, 35, 45, 55, 75, 80, 100},
		},
	)
	milestones := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifelag",
			Name:      "milestones_total",
			Help:      "Milestones reached, by milestone type.",
		},
		[]string{"type"},
	)
	notifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifelag",
			Name:      "notifications_total",
			Help:      "Notification delivery attempts, by kind and status.",
		},
		[]string{"kind", "status"},
	)

	reg.MustRegister(checkins, lagScores, milestones, notifications)

	return &Metrics{
		checkins:      checkins,
		lagScores:     lagScores,
		milestones:    milestones,
		notifications: notifications,
	}
}

func (m *Metrics) ObserveCheckin(category string, score int) {
	if m == nil {
		return
	}
	m.checkins.WithLabelValues(category).Inc()
	m.lagScores.Observe(float64(score))
}

func (m *Metrics) ObserveMilestone(milestoneType string) {
	if m == nil {
		return
	}
	m.milestones.WithLabelValues(milestoneType).Inc()
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.notifications.WithLabelValues(kind, status).Inc()
}
