// Package questgen instantiates daily quests from program templates.
// Runs once per day (cron or `guildday generate`); instances snapshot
// the template fields — including the completion rule — at creation,
// so later template edits never reach past dates.
package questgen

import (
	"fmt"
	"log"

	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/metrics"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

// Service generates daily quest instances.
type Service struct {
	db *sqlite.DB
}

// New creates a quest generation service.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// GenerateDaily creates the day's quest instances for every member of
// every active cohort. Idempotent: instances that already exist for the
// (member, cohort, date, template) key are left untouched. Returns the
// number of instances actually created.
func (s *Service) GenerateDaily(date string) (int64, error) {
	if !domain.ValidDate(date) {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	cohorts, err := s.db.ListActiveCohorts()
	if err != nil {
		return 0, fmt.Errorf("list cohorts: %w", err)
	}

	var total int64
	for _, cohort := range cohorts {
		members, err := s.db.ListMemberships(cohort.ID)
		if err != nil {
			return total, fmt.Errorf("list members of cohort %d: %w", cohort.ID, err)
		}
		if len(members) == 0 {
			continue
		}

		templates, err := s.db.ListActiveTemplates(cohort.ProgramID)
		if err != nil {
			return total, fmt.Errorf("list templates for program %d: %w", cohort.ProgramID, err)
		}
		if len(templates) == 0 {
			continue
		}

		for _, member := range members {
			quests := make([]domain.DailyQuest, 0, len(templates))
			for _, t := range templates {
				quests = append(quests, domain.DailyQuest{
					MemberID:       member.MemberID,
					CohortID:       cohort.ID,
					QuestDate:      date,
					TemplateID:     t.ID,
					Title:          t.Title,
					Description:    t.Description,
					QuestType:      t.QuestType,
					XPReward:       t.XPReward,
					StatRewards:    t.StatRewards,
					CompletionRule: t.CompletionRule,
				})
			}

			n, err := s.db.InsertDailyQuests(quests)
			if err != nil {
				return total, fmt.Errorf("insert quests: %w", err)
			}
			total += n
		}
	}

	if total > 0 {
		log.Printf("[questgen] generated %d quest instances for %s", total, date)
		metrics.QuestsGenerated.Add(float64(total))
	}
	return total, nil
}
