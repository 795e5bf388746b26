package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Monitoring cycle metrics
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinl_ticks_total",
			Help: "Total number of completed monitoring ticks",
		},
	)

	LogFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentinl_log_failures_total",
			Help: "Total number of readings lost to durable-log append failures",
		},
	)

	ReadingsByStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinl_readings_total",
			Help: "Total readings sampled, by classification",
		},
		[]string{"status"}, // OK, WARNING, CRITICAL
	)

	// Latest machine condition
	Temperature = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinl_machine_temperature_celsius",
			Help: "Temperature of the last sampled reading",
		},
	)

	Vibration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinl_machine_vibration_units",
			Help: "Vibration of the last sampled reading",
		},
	)

	MachineStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinl_machine_status",
			Help: "Classification of the last reading (0=OK 1=WARNING 2=CRITICAL)",
		},
	)

	StepsToFailure = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentinl_predicted_steps_to_failure",
			Help: "Predicted ticks until temperature crosses the critical threshold",
		},
	)
)
