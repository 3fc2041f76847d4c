package engine_test

import (
	"testing"

	"github.com/guildday/guildday/internal/app/engine"
	"github.com/guildday/guildday/internal/domain"
)

// seedLogs inserts one raw log per date offset (0 = anchor, 1 = the day
// before, ...) without going through the submission engine.
func seedLogs(t *testing.T, store domain.EngineStore, memberID string, cohortID int64, anchor string, logsByOffset map[int]domain.ActivityLog) {
	t.Helper()
	for offset, log := range logsByOffset {
		log.MemberID = memberID
		log.CohortID = cohortID
		log.LogDate = domain.AddDays(anchor, -offset)
		if err := store.UpsertDailyLog(log); err != nil {
			t.Fatalf("seed log at offset %d: %v", offset, err)
		}
	}
}

// qualifying satisfies 3 of the 4 mandatory habits.
func qualifying() domain.ActivityLog {
	return domain.ActivityLog{Steps: 7000, WorkoutDone: true, Convos: 5}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Recomputation Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestRecomputeStreak_ConsecutiveQualifyingDays(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	anchor := "2025-07-14"

	seedLogs(t, db, memberID, cohortID, anchor, map[int]domain.ActivityLog{
		0: qualifying(),
		1: qualifying(),
		2: qualifying(),
	})

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}
}

func TestRecomputeStreak_AnchorBelowQuorumIsZero(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	anchor := "2025-07-14"

	// A long history means nothing if the anchor day itself has only two
	// of the four habits.
	seedLogs(t, db, memberID, cohortID, anchor, map[int]domain.ActivityLog{
		0: {Steps: 7000, WorkoutDone: true},
		1: qualifying(),
		2: qualifying(),
	})

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 0 {
		t.Errorf("streak = %d, want 0", streak)
	}
}

func TestRecomputeStreak_GapStopsTheWalk(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	anchor := "2025-07-14"

	// Offset 2 is missing entirely; offsets 3 and 4 qualify but are
	// unreachable past the gap.
	seedLogs(t, db, memberID, cohortID, anchor, map[int]domain.ActivityLog{
		0: qualifying(),
		1: qualifying(),
		3: qualifying(),
		4: qualifying(),
	})

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 2 {
		t.Errorf("streak = %d, want 2 (walk stops at the gap)", streak)
	}
}

func TestRecomputeStreak_SubQuorumDayBreaksIt(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	anchor := "2025-07-14"

	// Day at offset 1 exists but only logged steps. Partial effort does
	// not sustain a streak.
	seedLogs(t, db, memberID, cohortID, anchor, map[int]domain.ActivityLog{
		0: qualifying(),
		1: {Steps: 12000},
		2: qualifying(),
	})

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestRecomputeStreak_FourOfFourAlsoQualifies(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	anchor := "2025-07-14"

	seedLogs(t, db, memberID, cohortID, anchor, map[int]domain.ActivityLog{
		0: {Steps: 7000, WorkoutDone: true, Convos: 5, LearningMinutes: 20},
	})

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestRecomputeStreak_BoundedByLookback(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)
	eng.SetLookbackDays(5)
	anchor := "2025-07-14"

	// 10 consecutive qualifying days, but the window only reaches back
	// 5 days from the anchor: [anchor−5, anchor] holds 6 records.
	seed := make(map[int]domain.ActivityLog, 10)
	for i := 0; i < 10; i++ {
		seed[i] = qualifying()
	}
	seedLogs(t, db, memberID, cohortID, anchor, seed)

	streak, err := eng.RecomputeStreak(memberID, cohortID, anchor)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 6 {
		t.Errorf("streak = %d, want 6 (window anchor−5..anchor)", streak)
	}
}

func TestRecomputeStreak_NoHistory(t *testing.T) {
	db := testDB(t)
	memberID, cohortID := seedMember(t, db)
	eng := engine.New(db)

	streak, err := eng.RecomputeStreak(memberID, cohortID, "2025-07-14")
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if streak != 0 {
		t.Errorf("streak = %d, want 0 with no logs at all", streak)
	}
}
