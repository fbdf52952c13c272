// Package metrics exposes Prometheus counters for credit movements. The
// /metrics endpoint in the HTTP router serves the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CreditsEarned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorus_credits_earned_total",
		Help: "Credits granted through verified recommendations.",
	})

	CreditsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorus_credits_spent_total",
		Help: "Credits spent funding karaoke requests.",
	})

	PromotionsFunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorus_promotions_funded_total",
		Help: "Promotions that reached their funding target.",
	})

	RequestsFunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorus_requests_funded_total",
		Help: "Karaoke requests fully funded from personal balances.",
	})
)
