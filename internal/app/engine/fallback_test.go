package engine_test

import (
	"testing"

	"github.com/guildday/guildday/internal/app/engine"
	"github.com/guildday/guildday/internal/domain"
)

// ═══════════════════════════════════════════════════════════════════════════
// Fallback Title-Matching Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestTitleCompletes_Prefixes(t *testing.T) {
	cases := []struct {
		title string
		log   domain.ActivityLog
		want  bool
	}{
		{"Move: 7,000 steps", domain.ActivityLog{Steps: 7000}, true},
		{"Move: 7,000 steps", domain.ActivityLog{Steps: 6999}, false},
		{"Train: any workout", domain.ActivityLog{WorkoutDone: true}, true},
		{"Train: any workout", domain.ActivityLog{}, false},
		{"Learn: 20 minutes", domain.ActivityLog{LearningMinutes: 20}, true},
		{"Learn: 20 minutes", domain.ActivityLog{LearningMinutes: 19}, false},
		{"Hunt: talk to people", domain.ActivityLog{Convos: 5}, true},
		{"Hunt: talk to people", domain.ActivityLog{Appts: 1}, true},
		{"Hunt: talk to people", domain.ActivityLog{Calls: 20, Texts: 40}, true},
		{"Hunt: talk to people", domain.ActivityLog{Calls: 20, Texts: 39}, false},
		{"Hunt: talk to people", domain.ActivityLog{Convos: 4}, false},
	}
	for _, c := range cases {
		if got := engine.TitleCompletes(c.title, c.log); got != c.want {
			t.Errorf("TitleCompletes(%q, %+v) = %v, want %v", c.title, c.log, got, c.want)
		}
	}
}

func TestTitleCompletes_Keywords(t *testing.T) {
	cases := []struct {
		title string
		log   domain.ActivityLog
		want  bool
	}{
		{"Morning workout", domain.ActivityLog{WorkoutDone: true}, true},
		{"Hit 10k steps", domain.ActivityLog{Steps: 10000}, true},
		{"Hit 10k steps", domain.ActivityLog{Steps: 9999}, false},
		{"Have 5 convos", domain.ActivityLog{Convos: 5}, true},
		{"Book 1 appt", domain.ActivityLog{Appts: 1}, true},
		{"Set an appointment", domain.ActivityLog{Appts: 2}, true},
		{"Post content", domain.ActivityLog{ContentDone: true}, true},
		{"Post content", domain.ActivityLog{}, false},
		{"Read 20 min", domain.ActivityLog{LearningMinutes: 25}, true},
		{"Study session", domain.ActivityLog{LearningMinutes: 25}, true},
	}
	for _, c := range cases {
		if got := engine.TitleCompletes(c.title, c.log); got != c.want {
			t.Errorf("TitleCompletes(%q) = %v, want %v", c.title, got, c.want)
		}
	}
}

func TestTitleCompletes_CaseInsensitive(t *testing.T) {
	if !engine.TitleCompletes("MOVE: get going", domain.ActivityLog{Steps: 8000}) {
		t.Error("prefix match should be case-insensitive")
	}
}

func TestTitleCompletes_NoMatchNeverCompletes(t *testing.T) {
	everything := domain.ActivityLog{
		Steps: 50000, WorkoutDone: true, LearningMinutes: 500,
		Calls: 99, Texts: 99, Convos: 99, Leads: 99, Appts: 99, ContentDone: true,
	}
	for _, title := range []string{"Drink water", "Call your mother", ""} {
		if engine.TitleCompletes(title, everything) {
			t.Errorf("title %q matches no heuristic and must never auto-complete", title)
		}
	}
}
