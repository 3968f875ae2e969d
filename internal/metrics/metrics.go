// Package metrics exposes Prometheus counters for the matching and lifecycle
// services. The matching engine itself stays pure; services observe its
// outcomes here, which in particular makes the engine's tolerated skips
// (preference entries with no concrete shift) visible for diagnosis.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MatchCandidates counts candidates produced per swap type
	MatchCandidates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "turnoswap_match_candidates_total",
		Help: "Swap candidates produced by the matching engine, by type.",
	}, []string{"type"})

	// SkippedWants counts preference entries the engine could not act on
	SkippedWants = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "turnoswap_match_skipped_wants_total",
		Help: "Preference wants skipped during matching, by reason.",
	}, []string{"reason"})

	// RuleVetoes counts preference pairings rejected by the rules engine
	RuleVetoes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "turnoswap_match_rule_vetoes_total",
		Help: "Candidate pairings vetoed by swap validation.",
	})

	// SwapTransitions counts lifecycle transitions by resulting status
	SwapTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "turnoswap_swap_transitions_total",
		Help: "Swap request lifecycle transitions, by resulting status.",
	}, []string{"status"})
)
