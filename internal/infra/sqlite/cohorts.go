package sqlite

import (
	"database/sql"
	"time"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Programs ───────────────────────────────────────────────────────────────

// InsertProgram creates a program and returns its ID.
func (d *DB) InsertProgram(p domain.Program) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO programs (name, description, city, created_at) VALUES (?, ?, ?, ?)`,
		p.Name, p.Description, p.City, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ─── Cohorts ────────────────────────────────────────────────────────────────

// InsertCohort creates a cohort and returns its ID.
func (d *DB) InsertCohort(c domain.Cohort) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO cohorts (program_id, name, starts_on, ends_on, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ProgramID, c.Name, c.StartsOn, c.EndsOn, c.Active, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetCohort retrieves a cohort by ID, or nil.
func (d *DB) GetCohort(id int64) (*domain.Cohort, error) {
	row := d.db.QueryRow(
		`SELECT id, program_id, name, starts_on, ends_on, active, created_at
		 FROM cohorts WHERE id = ?`, id,
	)
	var c domain.Cohort
	var createdAt int64
	err := row.Scan(&c.ID, &c.ProgramID, &c.Name, &c.StartsOn, &c.EndsOn, &c.Active, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &c, nil
}

// ListActiveCohorts returns all cohorts still running.
func (d *DB) ListActiveCohorts() ([]domain.Cohort, error) {
	rows, err := d.db.Query(
		`SELECT id, program_id, name, starts_on, ends_on, active, created_at
		 FROM cohorts WHERE active = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []domain.Cohort
	for rows.Next() {
		var c domain.Cohort
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.ProgramID, &c.Name, &c.StartsOn, &c.EndsOn,
			&c.Active, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		cohorts = append(cohorts, c)
	}
	return cohorts, rows.Err()
}

// ─── Memberships ────────────────────────────────────────────────────────────

// InsertMembership adds a member to a cohort.
func (d *DB) InsertMembership(m domain.Membership) error {
	_, err := d.db.Exec(
		`INSERT INTO cohort_memberships (cohort_id, member_id, role, joined_at)
		 VALUES (?, ?, ?, ?)`,
		m.CohortID, m.MemberID, string(m.Role), time.Now().Unix(),
	)
	return err
}

// GetMembership retrieves a membership, or nil.
func (d *DB) GetMembership(memberID string, cohortID int64) (*domain.Membership, error) {
	row := d.db.QueryRow(
		`SELECT id, cohort_id, member_id, role, joined_at
		 FROM cohort_memberships WHERE member_id = ? AND cohort_id = ?`,
		memberID, cohortID,
	)
	var m domain.Membership
	var role string
	var joinedAt int64
	err := row.Scan(&m.ID, &m.CohortID, &m.MemberID, &role, &joinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Role = domain.MemberRole(role)
	m.JoinedAt = time.Unix(joinedAt, 0).UTC()
	return &m, nil
}

// ListMemberships returns all members of a cohort.
func (d *DB) ListMemberships(cohortID int64) ([]domain.Membership, error) {
	rows, err := d.db.Query(
		`SELECT id, cohort_id, member_id, role, joined_at
		 FROM cohort_memberships WHERE cohort_id = ? ORDER BY id`,
		cohortID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var role string
		var joinedAt int64
		if err := rows.Scan(&m.ID, &m.CohortID, &m.MemberID, &role, &joinedAt); err != nil {
			return nil, err
		}
		m.Role = domain.MemberRole(role)
		m.JoinedAt = time.Unix(joinedAt, 0).UTC()
		members = append(members, m)
	}
	return members, rows.Err()
}

// ─── Invites ────────────────────────────────────────────────────────────────

// InsertInvite creates an invite code and returns its ID.
func (d *DB) InsertInvite(i domain.Invite) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO cohort_invites (cohort_id, code, role, max_uses, uses,
			expires_at, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.CohortID, i.Code, string(i.Role), i.MaxUses, i.Uses,
		nullableUnix(i.ExpiresAt), i.Active, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetInviteByCode retrieves an invite, or nil.
func (d *DB) GetInviteByCode(code string) (*domain.Invite, error) {
	row := d.db.QueryRow(
		`SELECT id, cohort_id, code, role, max_uses, uses, expires_at, active, created_at
		 FROM cohort_invites WHERE code = ?`, code,
	)
	var i domain.Invite
	var role string
	var expiresAt sql.NullInt64
	var createdAt int64
	err := row.Scan(&i.ID, &i.CohortID, &i.Code, &role, &i.MaxUses, &i.Uses,
		&expiresAt, &i.Active, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	i.Role = domain.MemberRole(role)
	if expiresAt.Valid {
		i.ExpiresAt = time.Unix(expiresAt.Int64, 0).UTC()
	}
	i.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &i, nil
}

// IncrementInviteUses bumps the redemption counter.
func (d *DB) IncrementInviteUses(id int64) error {
	_, err := d.db.Exec(`UPDATE cohort_invites SET uses = uses + 1 WHERE id = ?`, id)
	return err
}
