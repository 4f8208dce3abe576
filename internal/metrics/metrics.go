package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess rotula ciclos de agregação bem-sucedidos.
	OutcomeSuccess = "success"
	// OutcomeError rotula ciclos que falharam (fonte de dados ou persistência).
	OutcomeError = "error"
	// OutcomeFallback rotula ciclos que publicaram o snapshot todo-fallback.
	OutcomeFallback = "fallback"
)

var (
	refreshCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "survey_analytics",
			Name:      "refresh_cycles_total",
			Help:      "Total number of snapshot refresh cycles, partitioned by outcome.",
		},
		[]string{"outcome"},
	)

	refreshDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "survey_analytics",
			Name:      "refresh_seconds",
			Help:      "Snapshot refresh latency in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
		},
	)

	coalescedTriggersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "survey_analytics",
			Name:      "coalesced_triggers_total",
			Help:      "Refresh triggers absorbed into an already pending rerun.",
		},
	)

	trackedTenants = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "survey_analytics",
			Name:      "tracked_tenants",
			Help:      "Number of tenants with an active snapshot pipeline.",
		},
	)
)

// Register registra os coletores do serviço no registerer fornecido.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		refreshCyclesTotal,
		refreshDurationSeconds,
		coalescedTriggersTotal,
		trackedTenants,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRefresh registra a duração e o desfecho de um ciclo de agregação.
func ObserveRefresh(duration time.Duration, outcome string) {
	label := outcome
	switch label {
	case OutcomeError, OutcomeFallback:
	default:
		label = OutcomeSuccess
	}
	refreshCyclesTotal.WithLabelValues(label).Inc()
	if duration < 0 {
		duration = 0
	}
	refreshDurationSeconds.Observe(duration.Seconds())
}

// CountCoalescedTrigger registra um gatilho absorvido por uma reexecução
// já pendente.
func CountCoalescedTrigger() {
	coalescedTriggersTotal.Inc()
}

// SetTrackedTenants atualiza o número de tenants com pipeline ativo.
func SetTrackedTenants(n int) {
	trackedTenants.Set(float64(n))
}
