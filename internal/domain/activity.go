// Package domain holds the pure types of the Guildday engine.
// Scoring, ranks, and rule evaluation live here or in app/engine —
// no I/O, no side effects, everything testable without a database.
package domain

import "time"

// ActivityLog is one member's report for a single calendar day.
// At most one log exists per (member, cohort, date); submission is an
// upsert on that key and fully replaces the prior row, never merges.
type ActivityLog struct {
	MemberID        string `json:"member_id"`
	CohortID        int64  `json:"cohort_id"`
	LogDate         string `json:"log_date"` // ISO date "2006-01-02", UTC
	Steps           int    `json:"steps"`
	WorkoutDone     bool   `json:"workout_done"`
	LearningMinutes int    `json:"learning_minutes"`
	Calls           int    `json:"calls"`
	Texts           int    `json:"texts"`
	Convos          int    `json:"convos"`
	Leads           int    `json:"leads"`
	Appts           int    `json:"appts"`
	ContentDone     bool   `json:"content_done"`
	Notes           string `json:"notes"`
}

// ruleField resolves a rule-addressable field by name.
// Booleans coerce to 0/1 so a single numeric comparison covers all ops.
// Unknown fields report ok=false and the enclosing leaf evaluates false.
func (l ActivityLog) ruleField(name string) (float64, bool) {
	switch name {
	case "steps":
		return float64(l.Steps), true
	case "workout_done":
		return boolToFloat(l.WorkoutDone), true
	case "learning_minutes":
		return float64(l.LearningMinutes), true
	case "calls":
		return float64(l.Calls), true
	case "texts":
		return float64(l.Texts), true
	case "convos":
		return float64(l.Convos), true
	case "leads":
		return float64(l.Leads), true
	case "appts":
		return float64(l.Appts), true
	case "content_done":
		return boolToFloat(l.ContentDone), true
	}
	return 0, false
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// StatGains holds the seven per-stat counters used both as absolute
// values (on MemberStats) and as deltas (scoring output, submissions).
type StatGains struct {
	Str  int `json:"str"`
	Sta  int `json:"sta"`
	Agi  int `json:"agi"`
	Int  int `json:"int"`
	Cha  int `json:"cha"`
	Rep  int `json:"rep"`
	Gold int `json:"gold"`
}

// Sub returns g − o per field.
func (g StatGains) Sub(o StatGains) StatGains {
	return StatGains{
		Str:  g.Str - o.Str,
		Sta:  g.Sta - o.Sta,
		Agi:  g.Agi - o.Agi,
		Int:  g.Int - o.Int,
		Cha:  g.Cha - o.Cha,
		Rep:  g.Rep - o.Rep,
		Gold: g.Gold - o.Gold,
	}
}

// IsZero reports whether every counter is zero.
func (g StatGains) IsZero() bool {
	return g == StatGains{}
}

// MemberStats is the cumulative record per (member, cohort).
// It is created at cohort-join time and from then on only adjusted by
// deltas; the rank is derived from XP and never stored independently.
type MemberStats struct {
	MemberID  string    `json:"member_id"`
	CohortID  int64     `json:"cohort_id"`
	XP        int       `json:"xp"`
	Rank      Rank      `json:"rank"`
	Streak    int       `json:"streak"`
	Stats     StatGains `json:"stats"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplyDelta adds a per-stat delta to the counters.
// Individual stats are deliberately not floored at zero — only
// cumulative XP carries a floor. See DESIGN.md.
func (m *MemberStats) ApplyDelta(d StatGains) {
	m.Stats.Str += d.Str
	m.Stats.Sta += d.Sta
	m.Stats.Agi += d.Agi
	m.Stats.Int += d.Int
	m.Stats.Cha += d.Cha
	m.Stats.Rep += d.Rep
	m.Stats.Gold += d.Gold
}
