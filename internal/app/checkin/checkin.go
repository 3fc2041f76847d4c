// Package checkin records location visits and completes location-type
// quests. It is the sole writer of completion for that quest type; the
// submission engine skips location quests entirely.
package checkin

import (
	"fmt"
	"time"

	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/metrics"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

// Service handles location check-ins.
type Service struct {
	db *sqlite.DB
}

// New creates a check-in service.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// CheckIn records a visit and completes the member's incomplete
// location quests for that date. Returns the check-in and the IDs of
// quests completed by it.
func (s *Service) CheckIn(memberID string, locationID int64, date, notes string) (*domain.Checkin, []int64, error) {
	if memberID == "" {
		return nil, nil, fmt.Errorf("%w: missing member_id", domain.ErrValidation)
	}
	if !domain.ValidDate(date) {
		return nil, nil, fmt.Errorf("%w: checkin_date must be YYYY-MM-DD", domain.ErrValidation)
	}

	location, err := s.db.GetLocation(locationID)
	if err != nil {
		return nil, nil, fmt.Errorf("load location: %w", err)
	}
	if location == nil {
		return nil, nil, domain.ErrLocationNotFound
	}

	record := domain.Checkin{
		MemberID:    memberID,
		LocationID:  locationID,
		CheckinDate: date,
		Notes:       notes,
	}
	id, err := s.db.InsertCheckin(record)
	if err != nil {
		return nil, nil, fmt.Errorf("save checkin: %w", err)
	}
	record.ID = id
	metrics.Checkins.Inc()

	quests, err := s.db.ListLocationQuests(memberID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("load location quests: %w", err)
	}

	var completed []int64
	for _, q := range quests {
		if !q.Completed {
			completed = append(completed, q.ID)
		}
	}
	if len(completed) > 0 {
		if err := s.db.SetQuestCompletion(completed, true, time.Now().UTC()); err != nil {
			return nil, nil, fmt.Errorf("complete location quests: %w", err)
		}
	}

	return &record, completed, nil
}
