// Package category contains category and subcategory use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Name        string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation. Names are unique per
// household.
type CreateCategoryUseCase struct {
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryName,
			"category name is required",
			domainerror.ErrMissingCategoryName,
		)
	}

	taken, err := uc.categoryRepo.ExistsByHouseholdAndName(ctx, input.HouseholdID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTaken,
			fmt.Sprintf("category %q already exists in the household", name),
			domainerror.ErrCategoryNameTaken,
		)
	}

	category := entity.NewCategory(input.HouseholdID, name)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: category}, nil
}
