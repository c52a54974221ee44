// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// HouseholdRepository defines the interface for household persistence operations.
type HouseholdRepository interface {
	// Create creates a new household in the database.
	Create(ctx context.Context, household *entity.Household) error

	// FindByID retrieves a household by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Household, error)

	// FindActiveByUserID retrieves the household the user is an active member of,
	// or nil when the user has none.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Household, error)

	// GetWithMembers retrieves a household together with all its memberships.
	GetWithMembers(ctx context.Context, id uuid.UUID) (*entity.HouseholdWithMembers, error)

	// CreateMember adds a membership to a household.
	CreateMember(ctx context.Context, member *entity.HouseholdMember) error

	// FindMemberByID retrieves a membership by its ID.
	FindMemberByID(ctx context.Context, id uuid.UUID) (*entity.HouseholdMember, error)

	// UpdateMember updates a membership.
	UpdateMember(ctx context.Context, member *entity.HouseholdMember) error

	// ActiveMemberUserIDs returns the user IDs of the household's active members
	// in a stable ascending order.
	ActiveMemberUserIDs(ctx context.Context, householdID uuid.UUID) ([]uuid.UUID, error)

	// CountActiveMembers counts the household's active members.
	CountActiveMembers(ctx context.Context, householdID uuid.UUID) (int, error)

	// IsActiveMember checks whether the user is an active member of the household.
	IsActiveMember(ctx context.Context, householdID, userID uuid.UUID) (bool, error)

	// HasActiveMembership checks whether the user is an active member of any household.
	HasActiveMembership(ctx context.Context, userID uuid.UUID) (bool, error)

	// SumActiveMemberIncomes sums the monthly income of active members, optionally
	// restricted to a single member.
	SumActiveMemberIncomes(ctx context.Context, householdID uuid.UUID, memberID *uuid.UUID) (decimal.Decimal, error)
}
