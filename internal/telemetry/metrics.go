package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики Keeper. Регистрируются в default-реестре при импорте пакета.
var (
	// CyclesTotal — количество завершённых циклов.
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keeper_cycles_total",
		Help: "Completed account cycles",
	})

	// CycleDuration — длительность цикла.
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "keeper_cycle_duration_seconds",
		Help:    "Duration of a full account cycle",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})

	// AccountsSettled — завершённые workflows по исходу (succeeded/failed).
	AccountsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keeper_accounts_settled_total",
		Help: "Settled account workflows by outcome",
	}, []string{"outcome"})

	// RequestRetries — повторы HTTP-запросов по классу сбоя
	// (server_fault / transient).
	RequestRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "keeper_request_retries_total",
		Help: "HTTP request retries by failure class",
	}, []string{"class"})
)
