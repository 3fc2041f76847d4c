package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guildday/guildday/internal/app/cohort"
	"github.com/guildday/guildday/internal/daemon"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo program, cohort, and quest templates",
	Long: `Create a demo program with one active cohort, the standard
daily quest templates, a couple of check-in locations, and a reusable
invite code. Intended for local development.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(daemon.GuilddayHome())
	if err != nil {
		return err
	}
	defer db.Close()

	programID, err := db.InsertProgram(domain.Program{
		Name:        "Demo Program",
		Description: "Seeded program for local development",
	})
	if err != nil {
		return fmt.Errorf("seed program: %w", err)
	}

	today := domain.Today()
	cohortID, err := db.InsertCohort(domain.Cohort{
		ProgramID: programID,
		Name:      "Demo Cohort",
		StartsOn:  today,
		EndsOn:    domain.AddDays(today, 90),
		Active:    true,
	})
	if err != nil {
		return fmt.Errorf("seed cohort: %w", err)
	}

	templates := []domain.QuestTemplate{
		{
			ProgramID: programID,
			QuestType: domain.QuestMandatory,
			Title:     "Move: 7,000 steps",
			XPReward:  5,
			MinRank:   domain.RankE,
			Active:    true,
			CompletionRule: &domain.Rule{
				Field: "steps", Op: domain.OpGte, Value: 7000,
			},
		},
		{
			ProgramID: programID,
			QuestType: domain.QuestFitness,
			Title:     "Train: any workout",
			XPReward:  10,
			MinRank:   domain.RankE,
			Active:    true,
			CompletionRule: &domain.Rule{
				Field: "workout_done", Op: domain.OpEq, Value: true,
			},
		},
		{
			ProgramID: programID,
			QuestType: domain.QuestBusiness,
			Title:     "Hunt: 5 convos or 1 appt",
			XPReward:  15,
			MinRank:   domain.RankE,
			Active:    true,
			CompletionRule: &domain.Rule{Any: []domain.Rule{
				{Field: "convos", Op: domain.OpGte, Value: 5},
				{Field: "appts", Op: domain.OpGte, Value: 1},
			}},
		},
		{
			ProgramID: programID,
			QuestType: domain.QuestLearning,
			Title:     "Learn: 20 minutes",
			XPReward:  5,
			MinRank:   domain.RankE,
			Active:    true,
			CompletionRule: &domain.Rule{
				Field: "learning_minutes", Op: domain.OpGte, Value: 20,
			},
		},
		{
			ProgramID: programID,
			QuestType: domain.QuestLocation,
			Title:     "Visit a training ground",
			XPReward:  25,
			MinRank:   domain.RankE,
			Active:    true,
		},
	}
	for _, t := range templates {
		if _, err := db.InsertQuestTemplate(t); err != nil {
			return fmt.Errorf("seed template %q: %w", t.Title, err)
		}
	}

	locations := []domain.Location{
		{
			ProgramID: programID, Zone: "Downtown", Name: "Central Gym",
			Category: "fitness", SuggestedMission: "Train: any workout",
		},
		{
			ProgramID: programID, Zone: "Downtown", Name: "Market Square",
			Category: "networking", SuggestedMission: "Hunt: 5 convos or 1 appt",
		},
	}
	for _, l := range locations {
		if _, err := db.InsertLocation(l); err != nil {
			return fmt.Errorf("seed location %q: %w", l.Name, err)
		}
	}

	invite, err := cohort.New(db).CreateInvite(cohortID, domain.RoleAgent, 100, 0)
	if err != nil {
		return fmt.Errorf("seed invite: %w", err)
	}

	fmt.Printf("Seeded program %d, cohort %d with %d templates and %d locations\n",
		programID, cohortID, len(templates), len(locations))
	fmt.Printf("Invite code: %s\n", invite.Code)
	return nil
}
