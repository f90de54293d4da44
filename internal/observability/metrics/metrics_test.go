package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMetricsNilSafe(t *testing.T) {
	var m *RecordMetrics
	// Must not panic when metrics are not wired.
	m.ObserveCreate("patient")
	m.ObserveRewrite("appointment")
	m.SetQueueDepth(3)
	m.ObserveAudit("PROCESSED")
}

func TestRecordMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRecordMetrics(reg)

	m.ObserveCreate("referral")
	m.ObserveCreate("referral")
	m.SetQueueDepth(5)
	m.ObserveAudit("CREATED_AND_QUEUED")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.createdTotal.WithLabelValues("referral")))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.queueDepth))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.auditTotal.WithLabelValues("CREATED_AND_QUEUED")))
}
