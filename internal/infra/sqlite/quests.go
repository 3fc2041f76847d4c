package sqlite

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Quest Templates ────────────────────────────────────────────────────────

// InsertQuestTemplate creates a template and returns its ID.
func (d *DB) InsertQuestTemplate(t domain.QuestTemplate) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO quest_templates (program_id, quest_type, title, description,
			xp_reward, stat_rewards, completion_rule, min_rank, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ProgramID, string(t.QuestType), t.Title, t.Description,
		t.XPReward, marshalStats(t.StatRewards), nullableRule(t.CompletionRule),
		string(t.MinRank), t.Active,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateQuestTemplateRule replaces a template's completion rule.
// Already-instantiated daily quests keep their frozen copy.
func (d *DB) UpdateQuestTemplateRule(id int64, rule *domain.Rule) error {
	_, err := d.db.Exec(
		`UPDATE quest_templates SET completion_rule = ? WHERE id = ?`,
		nullableRule(rule), id,
	)
	return err
}

// ListActiveTemplates returns a program's active quest templates.
func (d *DB) ListActiveTemplates(programID int64) ([]domain.QuestTemplate, error) {
	rows, err := d.db.Query(
		`SELECT id, program_id, quest_type, title, description, xp_reward,
			stat_rewards, completion_rule, min_rank, active
		 FROM quest_templates WHERE program_id = ? AND active = 1 ORDER BY id`,
		programID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []domain.QuestTemplate
	for rows.Next() {
		var t domain.QuestTemplate
		var questType, minRank, statRewards string
		var rule sql.NullString
		if err := rows.Scan(&t.ID, &t.ProgramID, &questType, &t.Title,
			&t.Description, &t.XPReward, &statRewards, &rule, &minRank,
			&t.Active); err != nil {
			return nil, err
		}
		t.QuestType = domain.QuestType(questType)
		t.MinRank = domain.Rank(minRank)
		t.StatRewards = unmarshalStats(statRewards)
		if rule.Valid {
			t.CompletionRule = domain.ParseRule([]byte(rule.String))
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// ─── Daily Quests ───────────────────────────────────────────────────────────

// InsertDailyQuests snapshots templates into instances. Existing rows
// for the same (member, cohort, date, template) key are left untouched,
// so regeneration is idempotent and never retro-edits past instances.
// Returns the number of rows actually inserted.
func (d *DB) InsertDailyQuests(quests []domain.DailyQuest) (int64, error) {
	var inserted int64
	for _, q := range quests {
		res, err := d.db.Exec(
			`INSERT OR IGNORE INTO daily_quests (member_id, cohort_id, quest_date,
				template_id, title, description, quest_type, xp_reward,
				stat_rewards, completion_rule, completed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)`,
			q.MemberID, q.CohortID, q.QuestDate, q.TemplateID, q.Title,
			q.Description, string(q.QuestType), q.XPReward,
			marshalStats(q.StatRewards), nullableRule(q.CompletionRule),
		)
		if err != nil {
			return inserted, err
		}
		n, _ := res.RowsAffected()
		inserted += n
	}
	return inserted, nil
}

// ListDailyQuests returns the member's quest instances for a date.
func (d *DB) ListDailyQuests(memberID string, cohortID int64, date string) ([]domain.DailyQuest, error) {
	rows, err := d.db.Query(
		`SELECT id, member_id, cohort_id, quest_date, template_id, title,
			description, quest_type, xp_reward, stat_rewards, completion_rule,
			completed, completed_at
		 FROM daily_quests
		 WHERE member_id = ? AND cohort_id = ? AND quest_date = ?
		 ORDER BY id`,
		memberID, cohortID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []domain.DailyQuest
	for rows.Next() {
		q, err := scanDailyQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

// GetDailyQuest retrieves one quest instance by ID, or nil.
func (d *DB) GetDailyQuest(id int64) (*domain.DailyQuest, error) {
	row := d.db.QueryRow(
		`SELECT id, member_id, cohort_id, quest_date, template_id, title,
			description, quest_type, xp_reward, stat_rewards, completion_rule,
			completed, completed_at
		 FROM daily_quests WHERE id = ?`, id,
	)
	return scanDailyQuest(row)
}

// ListLocationQuests returns a member's location-type quests for a date
// across all cohorts. Used by the check-in flow, which is the only
// writer of completion for this quest type.
func (d *DB) ListLocationQuests(memberID string, date string) ([]domain.DailyQuest, error) {
	rows, err := d.db.Query(
		`SELECT id, member_id, cohort_id, quest_date, template_id, title,
			description, quest_type, xp_reward, stat_rewards, completion_rule,
			completed, completed_at
		 FROM daily_quests
		 WHERE member_id = ? AND quest_date = ? AND quest_type = ?
		 ORDER BY id`,
		memberID, date, string(domain.QuestLocation),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []domain.DailyQuest
	for rows.Next() {
		q, err := scanDailyQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

// SetQuestCompletion flips completion for a batch of quest IDs.
func (d *DB) SetQuestCompletion(ids []int64, completed bool, completedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+2)
	args = append(args, completed, nullableUnix(completedAt))
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := d.db.Exec(
		`UPDATE daily_quests SET completed = ?, completed_at = ?
		 WHERE id IN (`+placeholders+`)`, args...,
	)
	return err
}

// ─── Scanners / codecs ──────────────────────────────────────────────────────

func scanDailyQuest(s scanner) (*domain.DailyQuest, error) {
	var q domain.DailyQuest
	var questType, statRewards string
	var rule sql.NullString
	var completedAt sql.NullInt64

	err := s.Scan(&q.ID, &q.MemberID, &q.CohortID, &q.QuestDate, &q.TemplateID,
		&q.Title, &q.Description, &questType, &q.XPReward, &statRewards,
		&rule, &q.Completed, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	q.QuestType = domain.QuestType(questType)
	q.StatRewards = unmarshalStats(statRewards)
	if rule.Valid {
		q.CompletionRule = domain.ParseRule([]byte(rule.String))
	}
	if completedAt.Valid {
		q.CompletedAt = time.Unix(completedAt.Int64, 0).UTC()
	}
	return &q, nil
}

func marshalStats(g domain.StatGains) string {
	data, err := json.Marshal(g)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func unmarshalStats(s string) domain.StatGains {
	var g domain.StatGains
	_ = json.Unmarshal([]byte(s), &g)
	return g
}

func nullableRule(r *domain.Rule) sql.NullString {
	data := domain.MarshalRule(r)
	if data == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
