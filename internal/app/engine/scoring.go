// Package engine implements the Guildday activity scoring and
// quest-completion engine: the pure computation from a day's activity
// log to an XP delta, stat gains, a rank, a recomputed streak, and the
// set of quests that flip completion state.
package engine

import "github.com/guildday/guildday/internal/domain"

// MandatoryCount returns how many of the four core daily habits the log
// satisfies (0–4). Three or more sustain the streak.
func MandatoryCount(log domain.ActivityLog) int {
	count := 0
	if log.Steps >= 7000 {
		count++
	}
	if log.WorkoutDone {
		count++
	}
	if log.Convos >= 5 || log.Appts >= 1 {
		count++
	}
	if log.LearningMinutes >= 20 {
		count++
	}
	return count
}

// XPFromLog computes the XP a single day's log is worth. Base XP is 5
// per mandatory habit (up to +20/day), plus independent bonuses. The
// result is never negative; the function only adds.
func XPFromLog(log domain.ActivityLog) int {
	xp := MandatoryCount(log) * 5

	if log.WorkoutDone {
		xp += 10
	}
	if log.Steps >= 10000 {
		xp += 5
	}
	if log.Convos >= 5 {
		xp += 10
	}
	if log.Appts >= 1 {
		xp += 15
	}
	if log.ContentDone {
		xp += 10
	}

	return xp
}

// StatGainsFromLog computes the per-stat gains for a single day's log.
// Learning earns intellect but no bonus XP beyond the quorum base.
func StatGainsFromLog(log domain.ActivityLog) domain.StatGains {
	var gains domain.StatGains

	if log.WorkoutDone {
		gains.Str++
		gains.Sta++
	}
	if log.Steps >= 10000 {
		gains.Sta++
	}
	if log.LearningMinutes >= 20 {
		gains.Int++
	}
	if log.Convos >= 5 {
		gains.Cha++
	}
	if log.Appts >= 1 {
		gains.Cha += 2
		gains.Rep++
	}
	if log.ContentDone {
		gains.Rep++
	}

	return gains
}
