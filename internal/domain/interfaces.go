package domain

import "time"

// ─── Store Interfaces ───────────────────────────────────────────────────────
// Boundaries between layers: infrastructure implements them, the
// application layer depends on them. The submission engine takes the
// narrow interface it needs so tests can inject storage failures.

// EngineStore is everything the log-submission engine touches.
type EngineStore interface {
	// GetDailyLog returns the log for the key, or nil if none exists.
	GetDailyLog(memberID string, cohortID int64, date string) (*ActivityLog, error)

	// UpsertDailyLog fully replaces the log for its (member, cohort,
	// date) key.
	UpsertDailyLog(log ActivityLog) error

	// ListDailyLogs returns logs for the member/cohort with
	// from ≤ log_date ≤ to.
	ListDailyLogs(memberID string, cohortID int64, from, to string) ([]ActivityLog, error)

	// GetMemberStats returns cumulative stats, or nil if the member
	// never joined the cohort.
	GetMemberStats(memberID string, cohortID int64) (*MemberStats, error)

	// UpdateMemberStats persists the full cumulative record.
	UpdateMemberStats(stats MemberStats) error

	// ListDailyQuests returns the member's quest instances for a date.
	ListDailyQuests(memberID string, cohortID int64, date string) ([]DailyQuest, error)

	// SetQuestCompletion flips completion for a batch of quest IDs.
	// completedAt is ignored when completed is false.
	SetQuestCompletion(ids []int64, completed bool, completedAt time.Time) error
}
