package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBusinessCounters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.IncBookingsCreated("booking", 3)
	m.IncBookingsCreated("booking", 0)
	m.IncSlotConflict("create")
	m.IncBookingsSettled(2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotConflicts.WithLabelValues("create")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsSettled.WithLabelValues()))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingsCreated("booking", 1)
		m.IncSlotConflict("create")
		m.IncRecurringSkipped(1)
		m.IncStatusTransition("confirm")
		m.IncBookingsSettled(1)
		m.IncNotification("booking_created", "ok")
	})
}
