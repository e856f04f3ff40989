// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WizardStepsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_steps_submitted_total",
			Help: "Total number of wizard steps submitted upstream",
		},
		[]string{"step", "outcome"},
	)

	WizardStepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_step_failures_total",
			Help: "Total number of wizard step failures by error code",
		},
		[]string{"step", "error_code"},
	)

	WizardSubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "wizard_submit_duration_seconds",
			Help: "Duration of upstream step submissions in seconds",
		},
		[]string{"step"},
	)

	WizardActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wizard_active_sessions",
			Help: "Number of wizard sessions currently held by the gateway",
		},
	)

	WizardFinalizations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_finalizations_total",
			Help: "Total number of finalize calls by outcome",
		},
		[]string{"outcome"},
	)
)
