// Package cohort handles invite codes and cohort membership. Joining a
// cohort is where a member's cumulative stats row is born — the
// submission engine treats a missing row as an error, never as a state
// to initialize.
package cohort

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

// Service manages invites and joins.
type Service struct {
	db *sqlite.DB
}

// New creates a cohort service.
func New(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// CreateInvite mints an invite code for a cohort. ttl of zero means the
// invite never expires.
func (s *Service) CreateInvite(cohortID int64, role domain.MemberRole, maxUses int, ttl time.Duration) (*domain.Invite, error) {
	cohort, err := s.db.GetCohort(cohortID)
	if err != nil {
		return nil, fmt.Errorf("load cohort: %w", err)
	}
	if cohort == nil {
		return nil, domain.ErrCohortNotFound
	}

	if role == "" {
		role = domain.RoleAgent
	}
	if maxUses <= 0 {
		maxUses = 1
	}

	invite := domain.Invite{
		CohortID: cohortID,
		Code:     newCode(),
		Role:     role,
		MaxUses:  maxUses,
		Active:   true,
	}
	if ttl > 0 {
		invite.ExpiresAt = time.Now().UTC().Add(ttl)
	}

	id, err := s.db.InsertInvite(invite)
	if err != nil {
		return nil, fmt.Errorf("insert invite: %w", err)
	}
	invite.ID = id
	return &invite, nil
}

// Join redeems an invite code: validates it, creates the membership,
// and initializes the member's cumulative stats at zero.
func (s *Service) Join(memberID, code string) (*domain.Membership, error) {
	if memberID == "" {
		return nil, fmt.Errorf("%w: missing member_id", domain.ErrValidation)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: missing invite code", domain.ErrValidation)
	}

	invite, err := s.db.GetInviteByCode(code)
	if err != nil {
		return nil, fmt.Errorf("load invite: %w", err)
	}
	if invite == nil {
		return nil, domain.ErrInviteNotFound
	}
	if !invite.Active {
		return nil, domain.ErrInviteInactive
	}
	if !invite.ExpiresAt.IsZero() && invite.ExpiresAt.Before(time.Now().UTC()) {
		return nil, domain.ErrInviteExpired
	}
	if invite.MaxUses > 0 && invite.Uses >= invite.MaxUses {
		return nil, domain.ErrInviteExhausted
	}

	existing, err := s.db.GetMembership(memberID, invite.CohortID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMember
	}

	membership := domain.Membership{
		CohortID: invite.CohortID,
		MemberID: memberID,
		Role:     invite.Role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.InsertMembership(membership); err != nil {
		return nil, fmt.Errorf("create membership: %w", err)
	}

	stats := domain.MemberStats{
		MemberID:  memberID,
		CohortID:  invite.CohortID,
		Rank:      domain.RankE,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.db.InsertMemberStats(stats); err != nil {
		return nil, fmt.Errorf("init member stats: %w", err)
	}

	if err := s.db.IncrementInviteUses(invite.ID); err != nil {
		return nil, fmt.Errorf("update invite uses: %w", err)
	}

	return &membership, nil
}

// newCode derives a short shareable invite code from a UUID.
func newCode() string {
	id := uuid.NewString()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10])
}
