package sqlite

import (
	"database/sql"
	"time"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Member Stats ───────────────────────────────────────────────────────────

// InsertMemberStats creates the initial stats row at cohort-join time.
func (d *DB) InsertMemberStats(m domain.MemberStats) error {
	_, err := d.db.Exec(
		`INSERT INTO member_stats (member_id, cohort_id, xp, rank, streak,
			str, sta, agi, int_stat, cha, rep, gold, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MemberID, m.CohortID, m.XP, string(m.Rank), m.Streak,
		m.Stats.Str, m.Stats.Sta, m.Stats.Agi, m.Stats.Int,
		m.Stats.Cha, m.Stats.Rep, m.Stats.Gold, m.UpdatedAt.Unix(),
	)
	return err
}

// GetMemberStats retrieves cumulative stats, or nil if the member has
// no row for the cohort.
func (d *DB) GetMemberStats(memberID string, cohortID int64) (*domain.MemberStats, error) {
	row := d.db.QueryRow(
		`SELECT member_id, cohort_id, xp, rank, streak, str, sta, agi, int_stat,
			cha, rep, gold, updated_at
		 FROM member_stats WHERE member_id = ? AND cohort_id = ?`,
		memberID, cohortID,
	)

	var m domain.MemberStats
	var rank string
	var updatedAt int64
	err := row.Scan(&m.MemberID, &m.CohortID, &m.XP, &rank, &m.Streak,
		&m.Stats.Str, &m.Stats.Sta, &m.Stats.Agi, &m.Stats.Int,
		&m.Stats.Cha, &m.Stats.Rep, &m.Stats.Gold, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}
	m.Rank = domain.Rank(rank)
	m.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &m, nil
}

// UpdateMemberStats persists the full cumulative record.
func (d *DB) UpdateMemberStats(m domain.MemberStats) error {
	_, err := d.db.Exec(
		`UPDATE member_stats SET xp=?, rank=?, streak=?, str=?, sta=?, agi=?,
			int_stat=?, cha=?, rep=?, gold=?, updated_at=?
		 WHERE member_id = ? AND cohort_id = ?`,
		m.XP, string(m.Rank), m.Streak, m.Stats.Str, m.Stats.Sta, m.Stats.Agi,
		m.Stats.Int, m.Stats.Cha, m.Stats.Rep, m.Stats.Gold, m.UpdatedAt.Unix(),
		m.MemberID, m.CohortID,
	)
	return err
}
