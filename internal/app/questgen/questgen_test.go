package questgen_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/guildday/guildday/internal/app/questgen"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixture is a program with one cohort and two members.
type fixture struct {
	programID int64
	cohortID  int64
	members   []string
}

func seedFixture(t *testing.T, db *sqlite.DB, active bool) fixture {
	t.Helper()

	programID, err := db.InsertProgram(domain.Program{Name: "Field Program"})
	if err != nil {
		t.Fatalf("insert program: %v", err)
	}
	cohortID, err := db.InsertCohort(domain.Cohort{
		ProgramID: programID,
		Name:      "Summer Cohort",
		StartsOn:  "2025-06-01",
		EndsOn:    "2025-09-01",
		Active:    active,
	})
	if err != nil {
		t.Fatalf("insert cohort: %v", err)
	}

	f := fixture{programID: programID, cohortID: cohortID}
	for i := 0; i < 2; i++ {
		memberID := uuid.NewString()
		if err := db.InsertMembership(domain.Membership{
			CohortID: cohortID, MemberID: memberID, Role: domain.RoleAgent,
			JoinedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("insert membership: %v", err)
		}
		f.members = append(f.members, memberID)
	}
	return f
}

func seedTemplate(t *testing.T, db *sqlite.DB, programID int64, title string, active bool, rule *domain.Rule) int64 {
	t.Helper()
	id, err := db.InsertQuestTemplate(domain.QuestTemplate{
		ProgramID:      programID,
		QuestType:      domain.QuestFitness,
		Title:          title,
		XPReward:       10,
		MinRank:        domain.RankE,
		Active:         active,
		CompletionRule: rule,
	})
	if err != nil {
		t.Fatalf("insert template: %v", err)
	}
	return id
}

// ═══════════════════════════════════════════════════════════════════════════
// Daily Quest Generation Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestGenerateDaily_CreatesInstancesPerMemberAndTemplate(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db, true)
	seedTemplate(t, db, f.programID, "Move: 7,000 steps", true, nil)
	seedTemplate(t, db, f.programID, "Train: any workout", true, nil)
	seedTemplate(t, db, f.programID, "Retired quest", false, nil)

	svc := questgen.New(db)
	n, err := svc.GenerateDaily("2025-07-14")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n != 4 {
		t.Errorf("generated = %d, want 4 (2 members × 2 active templates)", n)
	}

	quests, err := db.ListDailyQuests(f.members[0], f.cohortID, "2025-07-14")
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(quests) != 2 {
		t.Fatalf("member has %d quests, want 2", len(quests))
	}
	for _, q := range quests {
		if q.Completed {
			t.Errorf("freshly generated quest %q should be incomplete", q.Title)
		}
	}
}

func TestGenerateDaily_Idempotent(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db, true)
	seedTemplate(t, db, f.programID, "Move: 7,000 steps", true, nil)

	svc := questgen.New(db)
	if _, err := svc.GenerateDaily("2025-07-14"); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	n, err := svc.GenerateDaily("2025-07-14")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if n != 0 {
		t.Errorf("regeneration created %d instances, want 0", n)
	}
}

func TestGenerateDaily_SnapshotRuleIsFrozen(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db, true)
	oldRule := &domain.Rule{Field: "steps", Op: domain.OpGte, Value: 7000}
	templateID := seedTemplate(t, db, f.programID, "Move: 7,000 steps", true, oldRule)

	svc := questgen.New(db)
	if _, err := svc.GenerateDaily("2025-07-14"); err != nil {
		t.Fatalf("generate day 1: %v", err)
	}

	// Editing the template must not reach back into day 1's instances.
	newRule := &domain.Rule{Field: "steps", Op: domain.OpGte, Value: 9000}
	if err := db.UpdateQuestTemplateRule(templateID, newRule); err != nil {
		t.Fatalf("update template rule: %v", err)
	}
	if _, err := svc.GenerateDaily("2025-07-15"); err != nil {
		t.Fatalf("generate day 2: %v", err)
	}

	day1, err := db.ListDailyQuests(f.members[0], f.cohortID, "2025-07-14")
	if err != nil || len(day1) != 1 {
		t.Fatalf("day 1 quests: %v (%d)", err, len(day1))
	}
	day2, err := db.ListDailyQuests(f.members[0], f.cohortID, "2025-07-15")
	if err != nil || len(day2) != 1 {
		t.Fatalf("day 2 quests: %v (%d)", err, len(day2))
	}

	walk := domain.ActivityLog{Steps: 8000}
	if !day1[0].CompletionRule.Eval(walk) {
		t.Error("day 1 instance should keep the 7000-step rule")
	}
	if day2[0].CompletionRule.Eval(walk) {
		t.Error("day 2 instance should carry the edited 9000-step rule")
	}
}

func TestGenerateDaily_SkipsInactiveCohorts(t *testing.T) {
	db := testDB(t)
	f := seedFixture(t, db, false)
	seedTemplate(t, db, f.programID, "Move: 7,000 steps", true, nil)

	svc := questgen.New(db)
	n, err := svc.GenerateDaily("2025-07-14")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n != 0 {
		t.Errorf("generated = %d, want 0 for an inactive cohort", n)
	}
}

func TestGenerateDaily_RejectsBadDate(t *testing.T) {
	db := testDB(t)
	svc := questgen.New(db)
	if _, err := svc.GenerateDaily("yesterday"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
