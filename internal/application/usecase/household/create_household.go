// Package household contains household and membership use cases.
package household

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/application/usecase/category"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// CreateHouseholdInput represents the input for household creation.
type CreateHouseholdInput struct {
	ActorID  uuid.UUID
	Name     string
	Nickname string
}

// CreateHouseholdOutput represents the output of household creation.
type CreateHouseholdOutput struct {
	Household *entity.Household
	Member    *entity.HouseholdMember
}

// CreateHouseholdUseCase creates a household with the creator as its first
// active member and seeds the default category tree. A user can only belong
// to one active household at a time.
type CreateHouseholdUseCase struct {
	householdRepo adapter.HouseholdRepository
	categoryRepo  adapter.CategoryRepository
}

// NewCreateHouseholdUseCase creates a new CreateHouseholdUseCase instance.
func NewCreateHouseholdUseCase(
	householdRepo adapter.HouseholdRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateHouseholdUseCase {
	return &CreateHouseholdUseCase{
		householdRepo: householdRepo,
		categoryRepo:  categoryRepo,
	}
}

// Execute performs the household creation.
func (uc *CreateHouseholdUseCase) Execute(ctx context.Context, input CreateHouseholdInput) (*CreateHouseholdOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeMissingHouseholdFields,
			"household name is required",
			domainerror.ErrMissingHouseholdFields,
		)
	}

	hasMembership, err := uc.householdRepo.HasActiveMembership(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}
	if hasMembership {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeAlreadyInHousehold,
			"user already belongs to an active household",
			domainerror.ErrAlreadyInHousehold,
		)
	}

	household := entity.NewHousehold(name)
	if err := uc.householdRepo.Create(ctx, household); err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}

	member := entity.NewHouseholdMember(household.ID, input.ActorID, input.Nickname)
	if err := uc.householdRepo.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	categories, subcategories := category.DefaultSeed(household.ID)
	if err := uc.categoryRepo.CreateBatch(ctx, categories, subcategories); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	slog.Info("household created",
		"household_id", household.ID,
		"creator_id", input.ActorID,
		"categories_seeded", len(categories))

	return &CreateHouseholdOutput{Household: household, Member: member}, nil
}
