// Package metrics exposes Prometheus counters for the engine's lifecycle
// operations, served on the web API under /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Deploys counts provisioning attempts, labeled by outcome.
	Deploys = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chunkhost_deploys_total",
		Help: "VPS provisioning attempts by outcome.",
	}, []string{"outcome"})

	// Destroys counts destroyed VPS.
	Destroys = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_destroys_total",
		Help: "VPS destroyed.",
	})

	// Renewals counts successful renewals.
	Renewals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_renewals_total",
		Help: "VPS renewals.",
	})

	// ExpirySweeps counts expiry sweep ticks.
	ExpirySweeps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_expiry_sweeps_total",
		Help: "Expiry sweep ticks completed.",
	})

	// SuspendedBySweep counts VPS suspended by the expiry sweeper.
	SuspendedBySweep = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_suspended_by_sweep_total",
		Help: "VPS suspended by the expiry sweeper.",
	})

	// GiveawaysResolved counts giveaways resolved by the sweeper.
	GiveawaysResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_giveaways_resolved_total",
		Help: "Giveaways resolved.",
	})

	// ActiveVPS tracks the number of active (not suspended) VPS.
	ActiveVPS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chunkhost_active_vps",
		Help: "Currently active VPS.",
	})

	// PointsSpent counts points debited from user balances.
	PointsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chunkhost_points_spent_total",
		Help: "Points debited across all users.",
	})
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
