// Package metrics holds the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leonweb"

// Result label values.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

var (
	// ContactSubmissions counts contact form submissions by result.
	ContactSubmissions = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions, differentiated by result.",
		},
		[]string{"result"},
	)

	// LoginAttempts counts admin login attempts by result.
	LoginAttempts = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_login_attempts_total",
			Help:      "Admin login attempts, differentiated by result.",
		},
		[]string{"result"},
	)

	// RecordMutations counts admin record changes by resource and operation.
	RecordMutations = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_record_mutations_total",
			Help:      "Records created, updated or deleted through the admin panel.",
		},
		[]string{"resource", "operation"},
	)

	// Uploads counts stored and rejected image uploads.
	Uploads = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Image uploads, differentiated by result.",
		},
		[]string{"result"},
	)
)
