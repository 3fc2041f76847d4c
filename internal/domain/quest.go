package domain

import "time"

// QuestType categorizes a quest. Location quests are owned by the
// check-in flow; the submission engine skips them structurally instead
// of matching on a reserved title.
type QuestType string

const (
	QuestMandatory QuestType = "mandatory"
	QuestFitness   QuestType = "fitness"
	QuestBusiness  QuestType = "business"
	QuestLearning  QuestType = "learning"
	QuestLocation  QuestType = "location"
)

// QuestTemplate is the program-level quest definition. Immutable except
// by admin edit; member activity never mutates it.
type QuestTemplate struct {
	ID             int64     `json:"id"`
	ProgramID      int64     `json:"program_id"`
	QuestType      QuestType `json:"quest_type"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	XPReward       int       `json:"xp_reward"`
	StatRewards    StatGains `json:"stat_rewards"`
	CompletionRule *Rule     `json:"completion_rule,omitempty"`
	MinRank        Rank      `json:"min_rank"`
	Active         bool      `json:"active"`
}

// DailyQuest is a per-member, per-day snapshot of a template. The
// completion rule is frozen at instantiation: later template edits do
// not reach already-instantiated quests.
type DailyQuest struct {
	ID             int64     `json:"id"`
	MemberID       string    `json:"member_id"`
	CohortID       int64     `json:"cohort_id"`
	QuestDate      string    `json:"quest_date"`
	TemplateID     int64     `json:"template_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	QuestType      QuestType `json:"quest_type"`
	XPReward       int       `json:"xp_reward"`
	StatRewards    StatGains `json:"stat_rewards"`
	CompletionRule *Rule     `json:"completion_rule,omitempty"`
	Completed      bool      `json:"completed"`
	CompletedAt    time.Time `json:"completed_at"`
}
