package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/malcolmseyd/bolt8-go/bolt8"
	"github.com/malcolmseyd/bolt8-go/server/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	directionSent     = "sent"
	directionReceived = "received"
)

type metrics struct {
	handshakes       *prometheus.CounterVec
	handshakeLatency prometheus.Histogram
	messages         *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		handshakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bolt8_handshakes_total",
			Help: "Responder handshakes by result.",
		}, []string{"result"}),
		handshakeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bolt8_handshake_duration_seconds",
			Help:    "Time from accepting a connection to the end of act three.",
			Buckets: prometheus.DefBuckets,
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bolt8_messages_total",
			Help: "Transport messages by direction.",
		}, []string{"direction"}),
	}
	reg.MustRegister(m.handshakes, m.handshakeLatency, m.messages)
	return m
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Handshake records the outcome of one handshake
func (m *metrics) Handshake(err error, d time.Duration) {
	m.handshakes.WithLabelValues(handshakeResult(err)).Inc()
	if err == nil {
		m.handshakeLatency.Observe(d.Seconds())
	}
}

func (m *metrics) Message(direction string) {
	m.messages.WithLabelValues(direction).Inc()
}

func handshakeResult(err error) string {
	var verErr *bolt8.UnknownHandshakeVersionError
	var ioErr *bolt8.IOError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verErr):
		return "unknown_version"
	case errors.As(err, &ioErr):
		return "io"
	case errors.Is(err, auth.ErrHandshake):
		return "rejected"
	default:
		return "error"
	}
}
