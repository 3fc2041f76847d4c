package engine

import (
	"fmt"

	"github.com/guildday/guildday/internal/domain"
)

// DefaultLookbackDays bounds the backward streak walk. 120 daily
// records is the contract default.
const DefaultLookbackDays = 120

// RecomputeStreak walks backward day-by-day from the anchor date,
// counting consecutive days whose log satisfies at least 3 of the 4
// mandatory habits. It recomputes from scratch on every submission so
// edits and backfills stay correct, trading a bounded history read for
// never maintaining an incremental counter.
func (e *Engine) RecomputeStreak(memberID string, cohortID int64, anchorDate string) (int, error) {
	start := domain.AddDays(anchorDate, -e.lookbackDays)

	logs, err := e.store.ListDailyLogs(memberID, cohortID, start, anchorDate)
	if err != nil {
		return 0, fmt.Errorf("load streak history: %w", err)
	}

	byDate := make(map[string]domain.ActivityLog, len(logs))
	for _, l := range logs {
		byDate[l.LogDate] = l
	}

	streak := 0
	cursor := anchorDate
	for {
		log, ok := byDate[cursor]
		if !ok {
			break
		}
		if MandatoryCount(log) < 3 {
			break
		}
		streak++
		cursor = domain.AddDays(cursor, -1)
	}

	return streak, nil
}

// fallbackStreak is the degraded heuristic used when the history read
// fails: extend the previously stored streak if today qualifies, else
// reset. A history failure must not abort the whole submission.
func fallbackStreak(prev int, today domain.ActivityLog) int {
	if MandatoryCount(today) >= 3 {
		return prev + 1
	}
	return 0
}
