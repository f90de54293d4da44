package metrics

import "github.com/prometheus/client_golang/prometheus"

// RecordMetrics exposes counters/gauges for the flat-file record flows.
type RecordMetrics struct {
	createdTotal  *prometheus.CounterVec
	rewritesTotal *prometheus.CounterVec
	queueDepth    prometheus.Gauge
	auditTotal    *prometheus.CounterVec
}

func NewRecordMetrics(reg prometheus.Registerer) *RecordMetrics {
	m := &RecordMetrics{
		createdTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicstore",
			Subsystem: "records",
			Name:      "created_total",
			Help:      "Total records created, per entity",
		}, []string{"entity"}),
		rewritesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicstore",
			Subsystem: "records",
			Name:      "file_rewrites_total",
			Help:      "Total full-file rewrites (updates, cancellations), per entity",
		}, []string{"entity"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinicstore",
			Subsystem: "referrals",
			Name:      "queue_depth",
			Help:      "Referrals currently awaiting processing",
		}),
		auditTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicstore",
			Subsystem: "referrals",
			Name:      "audit_lines_total",
			Help:      "Audit trail lines written, per action",
		}, []string{"action"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.createdTotal, m.rewritesTotal, m.queueDepth, m.auditTotal)
	return m
}

func (m *RecordMetrics) ObserveCreate(entity string) {
	if m == nil {
		return
	}
	m.createdTotal.WithLabelValues(entity).Inc()
}

func (m *RecordMetrics) ObserveRewrite(entity string) {
	if m == nil {
		return
	}
	m.rewritesTotal.WithLabelValues(entity).Inc()
}

func (m *RecordMetrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *RecordMetrics) ObserveAudit(action string) {
	if m == nil {
		return
	}
	m.auditTotal.WithLabelValues(action).Inc()
}
