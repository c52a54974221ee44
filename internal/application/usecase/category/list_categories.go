// Package category contains category and subcategory use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.CategoryWithSubcategories
}

// ListCategoriesUseCase handles listing the household's category tree.
type ListCategoriesUseCase struct {
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute returns the household's categories with their subcategories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	categories, err := uc.categoryRepo.FindByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{Categories: categories}, nil
}

// requireActiveMember rejects actors that are not active members of the household.
func requireActiveMember(ctx context.Context, householdRepo adapter.HouseholdRepository, householdID, actorID uuid.UUID) error {
	isMember, err := householdRepo.IsActiveMember(ctx, householdID, actorID)
	if err != nil {
		return fmt.Errorf("failed to check household membership: %w", err)
	}
	if !isMember {
		return domainerror.NewHouseholdError(
			domainerror.ErrCodeNotHouseholdMember,
			"user is not an active member of the household",
			domainerror.ErrNotHouseholdMember,
		)
	}
	return nil
}
