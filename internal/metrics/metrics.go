package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarkd_redirects_total",
		Help: "Total short code resolution attempts.",
	}, []string{"status"})

	RedirectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookmarkd_redirect_duration_seconds",
		Help:    "Time from request receipt to redirect response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	})

	VisitWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarkd_visit_write_errors_total",
		Help: "Visit counter increments that failed to persist.",
	})

	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarkd_registrations_total",
		Help: "Successfully registered users.",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarkd_logins_total",
		Help: "Login attempts.",
	}, []string{"status"})
)
