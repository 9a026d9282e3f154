package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the attendance engine.
type Metrics struct {
	CheckIns          prometheus.Counter
	CheckInRejections *prometheus.CounterVec
	CheckOuts         *prometheus.CounterVec
	LocationPings     prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CheckIns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teamtracker_checkins_total",
			Help: "Total number of successful attendance check-ins",
		}),
		CheckInRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teamtracker_checkin_rejections_total",
			Help: "Total number of rejected check-in attempts by reason",
		}, []string{"reason"}),
		CheckOuts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "teamtracker_checkouts_total",
			Help: "Total number of closed attendance sessions by terminal status",
		}, []string{"status"}),
		LocationPings: promauto.NewCounter(prometheus.CounterOpts{
			Name: "teamtracker_location_pings_total",
			Help: "Total number of recorded location pings",
		}),
	}
}

func (m *Metrics) ObserveCheckIn() {
	m.CheckIns.Inc()
}

func (m *Metrics) ObserveCheckInRejection(reason string) {
	m.CheckInRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveCheckOut(status string, count int) {
	m.CheckOuts.WithLabelValues(status).Add(float64(count))
}

func (m *Metrics) ObserveLocationPing() {
	m.LocationPings.Inc()
}
