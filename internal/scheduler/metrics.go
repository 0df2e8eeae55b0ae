package scheduler

import "github.com/zeromicro/go-zero/core/metric"

const metricNamespace = "coinwatch"

var (
	refreshTicks = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricNamespace,
		Subsystem: "refresh",
		Name:      "ticks_total",
		Help:      "refresh ticks by result (ok, fetch_error, maintenance).",
		Labels:    []string{"result"},
	})
	historyWrites = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricNamespace,
		Subsystem: "history",
		Name:      "writes_total",
		Help:      "per-coin history writes by result.",
		Labels:    []string{"result"},
	})
	cleanupDeletes = metric.NewCounterVec(&metric.CounterVecOpts{
		Namespace: metricNamespace,
		Subsystem: "cleanup",
		Name:      "deletes_total",
		Help:      "per-coin retention deletes by result.",
		Labels:    []string{"result"},
	})
)
