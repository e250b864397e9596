// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// importing this package anywhere is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsite_http_requests_total",
			Help: "HTTP requests by route class and status class.",
		},
		[]string{"class", "status"},
	)

	LoginSuccessTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labsite_login_success_total",
			Help: "Successful admin logins.",
		})

	LoginFailureTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labsite_login_failure_total",
			Help: "Rejected admin login attempts.",
		})

	CSRFRejectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labsite_csrf_rejects_total",
			Help: "Mutating requests rejected by CSRF validation.",
		})

	HeroUploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labsite_hero_uploads_total",
			Help: "Hero images written to disk.",
		})

	HeroUploadsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "labsite_hero_uploads_rejected_total",
			Help: "Hero upload batches rejected by validation.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		LoginSuccessTotal,
		LoginFailureTotal,
		CSRFRejectsTotal,
		HeroUploadsTotal,
		HeroUploadsRejected,
	)
}
