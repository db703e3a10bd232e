// Package metrics provides observability for the verification token
// lifecycle.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks token lifecycle counts.
type Metrics struct {
	TokensIssued     prometheus.Counter
	TokensCompleted  prometheus.Counter
	TokensExpired    prometheus.Counter
	CompletionErrors *prometheus.CounterVec
}

// New creates a Metrics instance registered against reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "verify_tokens_issued_total",
			Help: "Total number of verification tokens issued",
		}),
		TokensCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "verify_tokens_completed_total",
			Help: "Total number of verification tokens completed",
		}),
		TokensExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "verify_tokens_expired_total",
			Help: "Total number of verification tokens that expired before completion",
		}),
		CompletionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "verify_completion_errors_total",
			Help: "Completion attempts rejected, by reason",
		}, []string{"reason"}),
	}
}
