package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Storage errors
// arrive wrapped from the sqlite layer and are distinguished by not
// matching any sentinel here.

var (
	// ErrValidation marks a malformed submission. Nothing is persisted.
	ErrValidation = errors.New("invalid input")

	// ErrStatsNotFound means no cumulative stats row exists for the
	// member/cohort. Stats are created at cohort-join time, so this
	// indicates a missing join step upstream, not a state to initialize.
	ErrStatsNotFound = errors.New("member stats not found for cohort")

	// Cohort / invite errors
	ErrCohortNotFound  = errors.New("cohort not found")
	ErrInviteNotFound  = errors.New("invite code not found")
	ErrInviteInactive  = errors.New("invite is inactive")
	ErrInviteExpired   = errors.New("invite has expired")
	ErrInviteExhausted = errors.New("invite has reached max uses")
	ErrAlreadyMember   = errors.New("already a member of this cohort")

	// Location errors
	ErrLocationNotFound = errors.New("location not found")
)
