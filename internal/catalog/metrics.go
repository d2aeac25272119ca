package catalog

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the process-wide catalog counters, owned by the server and
// registered on the shared registry rather than kept as package globals.
type Metrics struct {
	CatalogVisits      prometheus.Counter
	ValidationFailures prometheus.Counter
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		CatalogVisits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_page_visits_total",
			Help: "Times the catalog listing page was rendered",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "course_validation_failures_total",
			Help: "Add-course submissions rejected for missing required fields",
		}),
	}

	reg.MustRegister(m.CatalogVisits, m.ValidationFailures)
	return m
}
