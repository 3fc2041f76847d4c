package sqlite

import (
	"database/sql"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Daily Logs ─────────────────────────────────────────────────────────────

// UpsertDailyLog inserts or fully replaces the log for its
// (member, cohort, date) key.
func (d *DB) UpsertDailyLog(l domain.ActivityLog) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_logs (member_id, cohort_id, log_date, steps, workout_done,
			learning_minutes, calls, texts, convos, leads, appts, content_done, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(member_id, cohort_id, log_date) DO UPDATE SET
			steps=excluded.steps,
			workout_done=excluded.workout_done,
			learning_minutes=excluded.learning_minutes,
			calls=excluded.calls,
			texts=excluded.texts,
			convos=excluded.convos,
			leads=excluded.leads,
			appts=excluded.appts,
			content_done=excluded.content_done,
			notes=excluded.notes`,
		l.MemberID, l.CohortID, l.LogDate, l.Steps, l.WorkoutDone,
		l.LearningMinutes, l.Calls, l.Texts, l.Convos, l.Leads, l.Appts,
		l.ContentDone, l.Notes,
	)
	return err
}

// GetDailyLog retrieves a single log, or nil if none exists for the key.
func (d *DB) GetDailyLog(memberID string, cohortID int64, date string) (*domain.ActivityLog, error) {
	row := d.db.QueryRow(
		`SELECT member_id, cohort_id, log_date, steps, workout_done, learning_minutes,
			calls, texts, convos, leads, appts, content_done, notes
		 FROM daily_logs WHERE member_id = ? AND cohort_id = ? AND log_date = ?`,
		memberID, cohortID, date,
	)
	return scanLog(row)
}

// ListDailyLogs returns logs with from ≤ log_date ≤ to, newest first.
func (d *DB) ListDailyLogs(memberID string, cohortID int64, from, to string) ([]domain.ActivityLog, error) {
	rows, err := d.db.Query(
		`SELECT member_id, cohort_id, log_date, steps, workout_done, learning_minutes,
			calls, texts, convos, leads, appts, content_done, notes
		 FROM daily_logs
		 WHERE member_id = ? AND cohort_id = ? AND log_date >= ? AND log_date <= ?
		 ORDER BY log_date DESC`,
		memberID, cohortID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.ActivityLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func scanLog(s scanner) (*domain.ActivityLog, error) {
	var l domain.ActivityLog
	err := s.Scan(&l.MemberID, &l.CohortID, &l.LogDate, &l.Steps, &l.WorkoutDone,
		&l.LearningMinutes, &l.Calls, &l.Texts, &l.Convos, &l.Leads, &l.Appts,
		&l.ContentDone, &l.Notes)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
