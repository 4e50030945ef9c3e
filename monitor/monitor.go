// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/chaos-server/game"
	"github.com/wfunc/chaos-server/spells"
)

// Metrics is shared by every room. It implements game.Observer.
type Metrics struct {
	OnlinePlayers    prometheus.Gauge
	ActiveRooms      prometheus.Gauge
	MessagesReceived prometheus.Counter
	MalformedFrames  prometheus.Counter
	RoundTrip        prometheus.Histogram
	SpellsCast       *prometheus.CounterVec
	Phases           *prometheus.CounterVec
	Games            prometheus.Counter
	Rounds           prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg. A nil reg gets a private
// registry.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	startTime := time.Now()
	m := &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected sessions",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms with a running game",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of client messages decoded",
		}),
		MalformedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_frames_total",
			Help:      "Frames dropped because they could not be decoded",
		}),
		RoundTrip: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_trip_seconds",
			Help:      "Ping round trip per session",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		SpellsCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spells_cast_total",
			Help:      "Spells cast by name",
		}, []string{"spell"}),
		Phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phases_entered_total",
			Help:      "Phase transitions by phase",
		}, []string{"phase"}),
		Games: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games played to the end",
		}),
		Rounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_rounds",
			Help:      "Rounds played per finished game",
			Buckets:   prometheus.LinearBuckets(1, 4, 8),
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.OnlinePlayers,
		m.ActiveRooms,
		m.MessagesReceived,
		m.MalformedFrames,
		m.RoundTrip,
		m.SpellsCast,
		m.Phases,
		m.Games,
		m.Rounds,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Seconds since the server started",
		}, func() float64 {
			return time.Since(startTime).Seconds()
		}),
	)

	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) IncOnlinePlayers() {
	m.OnlinePlayers.Inc()
}

func (m *Metrics) DecOnlinePlayers() {
	m.OnlinePlayers.Dec()
}

func (m *Metrics) SetActiveRooms(count int) {
	m.ActiveRooms.Set(float64(count))
}

func (m *Metrics) IncMessagesReceived() {
	m.MessagesReceived.Inc()
}

func (m *Metrics) IncMalformedFrames() {
	m.MalformedFrames.Inc()
}

func (m *Metrics) PhaseEntered(phase string) {
	m.Phases.WithLabelValues(phase).Inc()
}

func (m *Metrics) SpellCast(_ uint32, spell spells.Spell) {
	m.SpellsCast.WithLabelValues(spell.Name).Inc()
}

func (m *Metrics) LatencyMeasured(_ uint32, rtt time.Duration) {
	m.RoundTrip.Observe(rtt.Seconds())
}

func (m *Metrics) GameFinished(result game.Result) {
	m.Games.Inc()
	m.Rounds.Observe(float64(result.Rounds))
}
