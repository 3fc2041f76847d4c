package domain

import "time"

// MemberRole is a member's role within a cohort.
type MemberRole string

const (
	RoleAgent MemberRole = "agent"
	RoleCoach MemberRole = "coach"
	RoleAdmin MemberRole = "admin"
)

// Program is the reusable definition of a leveling system.
type Program struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"created_at"`
}

// Cohort is a time-boxed run of a program.
type Cohort struct {
	ID        int64     `json:"id"`
	ProgramID int64     `json:"program_id"`
	Name      string    `json:"name"`
	StartsOn  string    `json:"starts_on"` // ISO date
	EndsOn    string    `json:"ends_on"`   // ISO date
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership links a member to a cohort.
type Membership struct {
	ID       int64      `json:"id"`
	CohortID int64      `json:"cohort_id"`
	MemberID string     `json:"member_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// Invite is a redeemable cohort invite code.
type Invite struct {
	ID        int64      `json:"id"`
	CohortID  int64      `json:"cohort_id"`
	Code      string     `json:"code"`
	Role      MemberRole `json:"role"`
	MaxUses   int        `json:"max_uses"`
	Uses      int        `json:"uses"`
	ExpiresAt time.Time  `json:"expires_at"` // zero = never expires
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
}

// Location is a program check-in spot.
type Location struct {
	ID               int64   `json:"id"`
	ProgramID        int64   `json:"program_id"`
	Zone             string  `json:"zone"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Address          string  `json:"address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	SuggestedMission string  `json:"suggested_mission"`
}

// Checkin records a member visiting a location on a date.
type Checkin struct {
	ID          int64     `json:"id"`
	MemberID    string    `json:"member_id"`
	LocationID  int64     `json:"location_id"`
	CheckinDate string    `json:"checkin_date"` // ISO date
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
