package sqlite

import (
	"database/sql"
	"time"

	"github.com/guildday/guildday/internal/domain"
)

// ─── Locations ──────────────────────────────────────────────────────────────

// InsertLocation creates a location and returns its ID.
func (d *DB) InsertLocation(l domain.Location) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO locations (program_id, zone, name, category, address, lat, lng,
			suggested_mission)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ProgramID, l.Zone, l.Name, l.Category, l.Address, l.Lat, l.Lng,
		l.SuggestedMission,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetLocation retrieves a location by ID, or nil.
func (d *DB) GetLocation(id int64) (*domain.Location, error) {
	row := d.db.QueryRow(
		`SELECT id, program_id, zone, name, category, address, lat, lng, suggested_mission
		 FROM locations WHERE id = ?`, id,
	)
	var l domain.Location
	err := row.Scan(&l.ID, &l.ProgramID, &l.Zone, &l.Name, &l.Category,
		&l.Address, &l.Lat, &l.Lng, &l.SuggestedMission)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLocations returns a program's check-in spots.
func (d *DB) ListLocations(programID int64) ([]domain.Location, error) {
	rows, err := d.db.Query(
		`SELECT id, program_id, zone, name, category, address, lat, lng, suggested_mission
		 FROM locations WHERE program_id = ? ORDER BY zone, name`,
		programID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.ProgramID, &l.Zone, &l.Name, &l.Category,
			&l.Address, &l.Lat, &l.Lng, &l.SuggestedMission); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// ─── Check-ins ──────────────────────────────────────────────────────────────

// InsertCheckin records a location visit and returns its ID.
func (d *DB) InsertCheckin(c domain.Checkin) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO location_checkins (member_id, location_id, checkin_date, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.MemberID, c.LocationID, c.CheckinDate, c.Notes, time.Now().Unix(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
