package lattice

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grasch_lattice_registered_count",
		Help: "Number of content types added to a lattice.",
	})
	mCollapsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grasch_lattice_collapsed_count",
		Help: "Number of registrations that collapsed onto an existing member.",
	})
	mViolations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grasch_lattice_order_violations",
		Help: "Number of mutations rejected by an order invariant check.",
	})
	mMembers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "grasch_lattice_members",
		Help: "Number of members of the most recently grown lattice.",
	})
	mRegisterSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "grasch_lattice_register_seconds",
		Help: "Time to insert a content type and recompute its covers.",
	})
)
