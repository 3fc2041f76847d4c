package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/metrics"
)

// Engine orchestrates log submission: delta-based XP/stat accounting,
// rank derivation, streak recomputation, and quest auto-completion.
// It is the sole writer of cumulative stats and of completion flags for
// non-location quests; location quests belong to the check-in flow.
type Engine struct {
	store        domain.EngineStore
	lookbackDays int

	// Submissions for the same (member, cohort) are serialized so the
	// read-modify-write on cumulative stats cannot lose updates.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an engine over the given store.
func New(store domain.EngineStore) *Engine {
	return &Engine{
		store:        store,
		lookbackDays: DefaultLookbackDays,
		locks:        make(map[string]*sync.Mutex),
	}
}

// SetLookbackDays overrides the streak lookback window (config knob).
func (e *Engine) SetLookbackDays(days int) {
	if days > 0 {
		e.lookbackDays = days
	}
}

// SubmitResult is what a submission returns to the caller: the day's
// score, the delta actually applied, the updated cumulative stats, and
// the quest IDs that changed state.
type SubmitResult struct {
	XPGain          int                `json:"xp_gain"`
	DeltaXP         int                `json:"delta_xp"`
	DeltaStats      domain.StatGains   `json:"delta_stats"`
	Stats           domain.MemberStats `json:"stats"`
	AutoCompleted   []int64            `json:"auto_completed_quest_ids"`
	AutoUncompleted []int64            `json:"auto_uncompleted_quest_ids"`
}

// SubmitLog upserts a member's daily activity log and applies all
// derived state. Resubmitting an identical log is a no-op delta; an
// edited log adjusts totals by new-minus-old, never by re-adding.
//
// Storage failures before the stats write abort with no partial state.
// A failure while loading streak history degrades instead (see
// fallbackStreak). A failure flipping quest completion is reported but
// not rolled back: the next submission recomputes quest status from the
// current log, so the state self-heals.
func (e *Engine) SubmitLog(next domain.ActivityLog) (*SubmitResult, error) {
	if err := validate(next); err != nil {
		return nil, err
	}

	lock := e.lockFor(next.MemberID, next.CohortID)
	lock.Lock()
	defer lock.Unlock()

	// Prior log for the same key. Absent is fine: score against a zero
	// log, but don't invent a stored row.
	prev, err := e.store.GetDailyLog(next.MemberID, next.CohortID, next.LogDate)
	if err != nil {
		return nil, fmt.Errorf("load prior log: %w", err)
	}
	var prevLog domain.ActivityLog
	if prev != nil {
		prevLog = *prev
	}

	if err := e.store.UpsertDailyLog(next); err != nil {
		return nil, fmt.Errorf("save log: %w", err)
	}

	// Score both sides; only the difference reaches persisted totals.
	oldXP, newXP := 0, XPFromLog(next)
	var oldGains domain.StatGains
	if prev != nil {
		oldXP = XPFromLog(prevLog)
		oldGains = StatGainsFromLog(prevLog)
	}
	newGains := StatGainsFromLog(next)

	deltaXP := newXP - oldXP
	deltaStats := newGains.Sub(oldGains)

	stats, err := e.store.GetMemberStats(next.MemberID, next.CohortID)
	if err != nil {
		return nil, fmt.Errorf("load member stats: %w", err)
	}
	if stats == nil {
		return nil, domain.ErrStatsNotFound
	}

	stats.XP += deltaXP
	if stats.XP < 0 {
		stats.XP = 0
	}
	stats.Rank = domain.RankForXP(stats.XP)
	stats.ApplyDelta(deltaStats)

	streak, err := e.RecomputeStreak(next.MemberID, next.CohortID, next.LogDate)
	if err != nil {
		log.Printf("[engine] streak recompute failed, using fallback: %v", err)
		metrics.StreakFallbacks.Inc()
		streak = fallbackStreak(stats.Streak, next)
	}
	stats.Streak = streak
	stats.UpdatedAt = time.Now().UTC()

	if err := e.store.UpdateMemberStats(*stats); err != nil {
		return nil, fmt.Errorf("save member stats: %w", err)
	}

	metrics.LogsSubmitted.Inc()
	metrics.XPDelta.Add(float64(deltaXP))

	toComplete, toUncomplete, err := e.reconcileQuests(next)
	if err != nil {
		// Stats are already committed; report without rolling back.
		return nil, err
	}

	return &SubmitResult{
		XPGain:          newXP,
		DeltaXP:         deltaXP,
		DeltaStats:      deltaStats,
		Stats:           *stats,
		AutoCompleted:   toComplete,
		AutoUncompleted: toUncomplete,
	}, nil
}

// reconcileQuests evaluates the day's quest instances against the new
// log and flips completion both directions. Location quests are owned
// by the check-in flow and skipped structurally.
func (e *Engine) reconcileQuests(next domain.ActivityLog) (toComplete, toUncomplete []int64, err error) {
	quests, err := e.store.ListDailyQuests(next.MemberID, next.CohortID, next.LogDate)
	if err != nil {
		return nil, nil, fmt.Errorf("load quests: %w", err)
	}

	for _, q := range quests {
		if q.QuestType == domain.QuestLocation {
			continue
		}

		var should bool
		if q.CompletionRule != nil {
			should = q.CompletionRule.Eval(next)
		} else {
			should = TitleCompletes(q.Title, next)
		}

		switch {
		case should && !q.Completed:
			toComplete = append(toComplete, q.ID)
		case !should && q.Completed:
			toUncomplete = append(toUncomplete, q.ID)
		}
	}

	if len(toComplete) > 0 {
		if err := e.store.SetQuestCompletion(toComplete, true, time.Now().UTC()); err != nil {
			return nil, nil, fmt.Errorf("complete quests: %w", err)
		}
		metrics.QuestsAutoCompleted.Add(float64(len(toComplete)))
	}
	if len(toUncomplete) > 0 {
		if err := e.store.SetQuestCompletion(toUncomplete, false, time.Time{}); err != nil {
			return nil, nil, fmt.Errorf("uncomplete quests: %w", err)
		}
		metrics.QuestsAutoUncompleted.Add(float64(len(toUncomplete)))
	}

	return toComplete, toUncomplete, nil
}

// validate rejects malformed submissions before anything is persisted.
func validate(log domain.ActivityLog) error {
	if log.MemberID == "" {
		return fmt.Errorf("%w: missing member_id", domain.ErrValidation)
	}
	if log.CohortID <= 0 {
		return fmt.Errorf("%w: missing cohort_id", domain.ErrValidation)
	}
	if !domain.ValidDate(log.LogDate) {
		return fmt.Errorf("%w: log_date must be YYYY-MM-DD", domain.ErrValidation)
	}
	for name, v := range map[string]int{
		"steps":            log.Steps,
		"learning_minutes": log.LearningMinutes,
		"calls":            log.Calls,
		"texts":            log.Texts,
		"convos":           log.Convos,
		"leads":            log.Leads,
		"appts":            log.Appts,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must be non-negative", domain.ErrValidation, name)
		}
	}
	return nil
}

// lockFor returns the mutex serializing one (member, cohort) pair.
func (e *Engine) lockFor(memberID string, cohortID int64) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", memberID, cohortID)

	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.locks[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	e.locks[key] = m
	return m
}
