// Package sqlite provides SQLite-based persistent storage for Guildday.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/guildday.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "guildday.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Programs and cohorts
		`CREATE TABLE IF NOT EXISTS programs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			city        TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cohorts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			program_id INTEGER NOT NULL REFERENCES programs(id),
			name       TEXT NOT NULL,
			starts_on  TEXT NOT NULL,
			ends_on    TEXT NOT NULL,
			active     BOOLEAN NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cohort_memberships (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			cohort_id INTEGER NOT NULL REFERENCES cohorts(id),
			member_id TEXT NOT NULL,
			role      TEXT NOT NULL DEFAULT 'agent',
			joined_at INTEGER NOT NULL,
			UNIQUE(cohort_id, member_id)
		)`,
		`CREATE TABLE IF NOT EXISTS cohort_invites (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			cohort_id  INTEGER NOT NULL REFERENCES cohorts(id),
			code       TEXT NOT NULL UNIQUE,
			role       TEXT NOT NULL DEFAULT 'agent',
			max_uses   INTEGER NOT NULL DEFAULT 1,
			uses       INTEGER NOT NULL DEFAULT 0,
			expires_at INTEGER,
			active     BOOLEAN NOT NULL DEFAULT 1,
			created_at INTEGER NOT NULL
		)`,

		// Cumulative member stats — one row per (member, cohort),
		// created at join time, adjusted only by deltas afterwards.
		`CREATE TABLE IF NOT EXISTS member_stats (
			member_id  TEXT NOT NULL,
			cohort_id  INTEGER NOT NULL REFERENCES cohorts(id),
			xp         INTEGER NOT NULL DEFAULT 0,
			rank       TEXT NOT NULL DEFAULT 'E',
			streak     INTEGER NOT NULL DEFAULT 0,
			str        INTEGER NOT NULL DEFAULT 0,
			sta        INTEGER NOT NULL DEFAULT 0,
			agi        INTEGER NOT NULL DEFAULT 0,
			int_stat   INTEGER NOT NULL DEFAULT 0,
			cha        INTEGER NOT NULL DEFAULT 0,
			rep        INTEGER NOT NULL DEFAULT 0,
			gold       INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (member_id, cohort_id)
		)`,

		// Daily activity logs — the upsert key makes resubmission a
		// replace, never an append.
		`CREATE TABLE IF NOT EXISTS daily_logs (
			member_id        TEXT NOT NULL,
			cohort_id        INTEGER NOT NULL REFERENCES cohorts(id),
			log_date         TEXT NOT NULL,
			steps            INTEGER NOT NULL DEFAULT 0,
			workout_done     BOOLEAN NOT NULL DEFAULT 0,
			learning_minutes INTEGER NOT NULL DEFAULT 0,
			calls            INTEGER NOT NULL DEFAULT 0,
			texts            INTEGER NOT NULL DEFAULT 0,
			convos           INTEGER NOT NULL DEFAULT 0,
			leads            INTEGER NOT NULL DEFAULT 0,
			appts            INTEGER NOT NULL DEFAULT 0,
			content_done     BOOLEAN NOT NULL DEFAULT 0,
			notes            TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (member_id, cohort_id, log_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_date ON daily_logs(log_date)`,

		// Quest templates and their per-day instances
		`CREATE TABLE IF NOT EXISTS quest_templates (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			program_id      INTEGER NOT NULL REFERENCES programs(id),
			quest_type      TEXT NOT NULL,
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			xp_reward       INTEGER NOT NULL DEFAULT 0,
			stat_rewards    TEXT NOT NULL DEFAULT '{}',
			completion_rule TEXT,
			min_rank        TEXT NOT NULL DEFAULT 'E',
			active          BOOLEAN NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS daily_quests (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id       TEXT NOT NULL,
			cohort_id       INTEGER NOT NULL REFERENCES cohorts(id),
			quest_date      TEXT NOT NULL,
			template_id     INTEGER NOT NULL REFERENCES quest_templates(id),
			title           TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			quest_type      TEXT NOT NULL,
			xp_reward       INTEGER NOT NULL DEFAULT 0,
			stat_rewards    TEXT NOT NULL DEFAULT '{}',
			completion_rule TEXT,
			completed       BOOLEAN NOT NULL DEFAULT 0,
			completed_at    INTEGER,
			UNIQUE(member_id, cohort_id, quest_date, template_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quests_day ON daily_quests(member_id, cohort_id, quest_date)`,

		// Locations and check-ins
		`CREATE TABLE IF NOT EXISTS locations (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			program_id        INTEGER NOT NULL REFERENCES programs(id),
			zone              TEXT NOT NULL DEFAULT '',
			name              TEXT NOT NULL,
			category          TEXT NOT NULL DEFAULT '',
			address           TEXT NOT NULL DEFAULT '',
			lat               REAL NOT NULL DEFAULT 0,
			lng               REAL NOT NULL DEFAULT 0,
			suggested_mission TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS location_checkins (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id    TEXT NOT NULL,
			location_id  INTEGER NOT NULL REFERENCES locations(id),
			checkin_date TEXT NOT NULL,
			notes        TEXT NOT NULL DEFAULT '',
			created_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_day ON location_checkins(member_id, checkin_date)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
