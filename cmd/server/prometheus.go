package main

import (
	"github.com/miretskiy/cpusched/simulator"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Prometheus metrics, labelled by algorithm where it applies
	promMetrics = struct {
		runs              *prometheus.CounterVec
		processes         *prometheus.CounterVec
		avgWaitingTime    *prometheus.HistogramVec
		avgTurnaroundTime *prometheus.HistogramVec
		cpuUtilization    *prometheus.GaugeVec
		activeSessions    prometheus.Gauge
	}{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_runs_total",
			Help: "Completed scheduling runs",
		}, []string{"algorithm"}),
		processes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_processes_total",
			Help: "Processes scheduled across all runs",
		}, []string{"algorithm"}),
		avgWaitingTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cpusched_average_waiting_time",
			Help:    "Average waiting time per run, in time units",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"algorithm"}),
		avgTurnaroundTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cpusched_average_turnaround_time",
			Help:    "Average turnaround time per run, in time units",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"algorithm"}),
		cpuUtilization: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cpusched_last_cpu_utilization",
			Help: "CPU utilization (0-1) of the most recent run",
		}, []string{"algorithm"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cpusched_active_sessions",
			Help: "Connected terminal sessions",
		}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.runs,
		promMetrics.processes,
		promMetrics.avgWaitingTime,
		promMetrics.avgTurnaroundTime,
		promMetrics.cpuUtilization,
		promMetrics.activeSessions,
	)
}

func recordPrometheusRun(result simulator.Result, stats simulator.Stats) {
	alg := result.Algorithm.String()
	promMetrics.runs.WithLabelValues(alg).Inc()
	promMetrics.processes.WithLabelValues(alg).Add(float64(len(result.Processes)))

	// Empty runs have no defined averages
	if result.IsEmpty() {
		return
	}
	promMetrics.avgWaitingTime.WithLabelValues(alg).Observe(result.AverageWaitingTime)
	promMetrics.avgTurnaroundTime.WithLabelValues(alg).Observe(result.AverageTurnaroundTime)
	promMetrics.cpuUtilization.WithLabelValues(alg).Set(stats.CPUUtilization)
}
