// Package household contains household and membership use cases.
package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// GetHouseholdInput represents the input for fetching the actor's household.
type GetHouseholdInput struct {
	ActorID uuid.UUID
}

// GetHouseholdOutput represents the output of fetching a household.
type GetHouseholdOutput struct {
	Household *entity.HouseholdWithMembers
}

// GetHouseholdUseCase resolves the actor's active household with its members.
type GetHouseholdUseCase struct {
	householdRepo adapter.HouseholdRepository
}

// NewGetHouseholdUseCase creates a new GetHouseholdUseCase instance.
func NewGetHouseholdUseCase(householdRepo adapter.HouseholdRepository) *GetHouseholdUseCase {
	return &GetHouseholdUseCase{householdRepo: householdRepo}
}

// Execute fetches the actor's active household.
func (uc *GetHouseholdUseCase) Execute(ctx context.Context, input GetHouseholdInput) (*GetHouseholdOutput, error) {
	household, err := uc.householdRepo.FindActiveByUserID(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active household: %w", err)
	}
	if household == nil {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeNoActiveHousehold,
			"user has no active household",
			domainerror.ErrNoActiveHousehold,
		)
	}

	withMembers, err := uc.householdRepo.GetWithMembers(ctx, household.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load household members: %w", err)
	}

	return &GetHouseholdOutput{Household: withMembers}, nil
}
