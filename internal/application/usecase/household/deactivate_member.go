// Package household contains household and membership use cases.
package household

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// DeactivateMemberInput represents the input for deactivating a membership.
type DeactivateMemberInput struct {
	MemberID    uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// DeactivateMemberOutput represents the output of a deactivation.
type DeactivateMemberOutput struct {
	Member *entity.HouseholdMember
}

// DeactivateMemberUseCase flags a membership inactive. The record survives so
// historical allocations stay attributable; future equal splits simply stop
// including the member.
type DeactivateMemberUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewDeactivateMemberUseCase creates a new DeactivateMemberUseCase instance.
func NewDeactivateMemberUseCase(householdRepo adapter.HouseholdRepository) *DeactivateMemberUseCase {
	return &DeactivateMemberUseCase{householdRepo: householdRepo}
}

// Execute performs the deactivation.
func (uc *DeactivateMemberUseCase) Execute(ctx context.Context, input DeactivateMemberInput) (*DeactivateMemberOutput, error) {
	isMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check household membership: %w", err)
	}
	if !isMember {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeNotHouseholdMember,
			"user is not an active member of the household",
			domainerror.ErrNotHouseholdMember,
		)
	}

	member, err := uc.householdRepo.FindMemberByID(ctx, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil || member.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeMemberNotFound,
			"household member not found",
			domainerror.ErrMemberNotFound,
		)
	}

	if !member.Active {
		return &DeactivateMemberOutput{Member: member}, nil
	}

	member.Active = false
	member.UpdatedAt = time.Now().UTC()
	if err := uc.householdRepo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to deactivate member: %w", err)
	}

	slog.Info("household member deactivated",
		"household_id", input.HouseholdID,
		"member_id", member.ID,
		"user_id", member.UserID)

	return &DeactivateMemberOutput{Member: member}, nil
}
