// Package metrics содержит счётчики Prometheus для ключевых операций портала.
// Метрики отдаются на /metrics стандартным promhttp-обработчиком.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignupsTotal — количество успешных регистраций.
	SignupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geosentinel_signups_total",
		Help: "Number of successful user signups.",
	})

	// LoginsTotal — количество успешных входов.
	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geosentinel_logins_total",
		Help: "Number of successful logins.",
	})

	// RequestsCreatedTotal — количество созданных заявок AOI.
	RequestsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geosentinel_requests_created_total",
		Help: "Number of AOI requests created.",
	})

	// StatusTransitionsTotal — переходы статусов заявок по целевому статусу.
	StatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geosentinel_status_transitions_total",
		Help: "Number of request status transitions by target status.",
	}, []string{"status"})
)
