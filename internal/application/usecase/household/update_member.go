// Package household contains household and membership use cases.
package household

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// UpdateMemberInput represents the input for membership updates. Nil fields
// are left unchanged.
type UpdateMemberInput struct {
	MemberID      uuid.UUID
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	Nickname      *string
	MonthlyIncome *decimal.Decimal
}

// UpdateMemberOutput represents the output of a membership update.
type UpdateMemberOutput struct {
	Member *entity.HouseholdMember
}

// UpdateMemberUseCase handles membership updates: nickname and the declared
// monthly income used by the reporting summary.
type UpdateMemberUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewUpdateMemberUseCase creates a new UpdateMemberUseCase instance.
func NewUpdateMemberUseCase(householdRepo adapter.HouseholdRepository) *UpdateMemberUseCase {
	return &UpdateMemberUseCase{householdRepo: householdRepo}
}

// Execute performs the membership update.
func (uc *UpdateMemberUseCase) Execute(ctx context.Context, input UpdateMemberInput) (*UpdateMemberOutput, error) {
	member, err := uc.findMember(ctx, input.MemberID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil {
		member.Nickname = *input.Nickname
	}
	if input.MonthlyIncome != nil {
		if input.MonthlyIncome.IsNegative() {
			return nil, domainerror.NewHouseholdError(
				domainerror.ErrCodeMissingHouseholdFields,
				"monthly income cannot be negative",
				domainerror.ErrMissingHouseholdFields,
			)
		}
		member.MonthlyIncome = *input.MonthlyIncome
	}
	member.UpdatedAt = time.Now().UTC()

	if err := uc.householdRepo.UpdateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return &UpdateMemberOutput{Member: member}, nil
}

// findMember loads a membership after checking the actor's own membership.
func (uc *UpdateMemberUseCase) findMember(ctx context.Context, memberID, householdID, actorID uuid.UUID) (*entity.HouseholdMember, error) {
	isMember, err := uc.householdRepo.IsActiveMember(ctx, householdID, actorID)
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

	member, err := uc.householdRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	if member == nil || member.HouseholdID != householdID {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeMemberNotFound,
			"household member not found",
			domainerror.ErrMemberNotFound,
		)
	}
	return member, nil
}
