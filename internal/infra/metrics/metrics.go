// Package metrics provides Prometheus metrics for Guildday — counters
// for log submissions, XP flow, quest completion, and check-ins.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activity ───────────────────────────────────────────────────────────────

// LogsSubmitted counts accepted daily-log submissions (including edits).
var LogsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "logs_submitted_total",
	Help:      "Total accepted daily activity log submissions.",
})

// XPDelta accumulates the XP deltas applied to cumulative stats.
// Edits can contribute negative deltas, so this can decrease.
var XPDelta = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "guildday",
	Name:      "xp_delta_applied",
	Help:      "Running sum of XP deltas applied by submissions.",
})

// StreakFallbacks counts submissions where streak history could not be
// loaded and the degraded heuristic was used.
var StreakFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "streak_fallback_total",
	Help:      "Streak recomputations that fell back to the degraded heuristic.",
})

// ─── Quests ─────────────────────────────────────────────────────────────────

// QuestsAutoCompleted counts quests auto-completed by submissions.
var QuestsAutoCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "quests_autocompleted_total",
	Help:      "Quests auto-completed by log submissions.",
})

// QuestsAutoUncompleted counts quests reverted by edited submissions.
var QuestsAutoUncompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "quests_autouncompleted_total",
	Help:      "Quests auto-uncompleted after a log edit.",
})

// QuestsGenerated counts daily quest instances created from templates.
var QuestsGenerated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "quests_generated_total",
	Help:      "Daily quest instances generated from templates.",
})

// ─── Check-ins ──────────────────────────────────────────────────────────────

// Checkins counts location check-ins.
var Checkins = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "guildday",
	Name:      "checkins_total",
	Help:      "Location check-ins recorded.",
})
