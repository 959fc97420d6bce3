package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncReservationOutcome("book", "success")
	m.IncReservationOutcome("book", "success")
	m.IncReservationOutcome("book", "conflict")
	m.IncFanoutDropped()
	m.ObserveHTTPRequest("POST", "/api/v1/reservations", 201, 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationOutcomes.WithLabelValues("book", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationOutcomes.WithLabelValues("book", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FanoutDropped.WithLabelValues()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/reservations", "201")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncReservationOutcome("cancel", "success")
		m.IncFanoutPublished("local")
		m.IncFanoutDropped()
		m.SetFanoutSubscribers(3)
		m.ObserveHTTPRequest("GET", "/", 200, 0)
	})
}
