// Package category contains category and subcategory use cases.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category updates. Nil fields
// are left unchanged.
type UpdateCategoryInput struct {
	CategoryID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Name        *string
	Active      *bool
}

// UpdateCategoryOutput represents the output of a category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category updates. Categories are deactivated,
// not deleted; historical line items keep their classification.
type UpdateCategoryUseCase struct {
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil || category.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryName,
				"category name is required",
				domainerror.ErrMissingCategoryName,
			)
		}
		if name != category.Name {
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
			category.Name = name
		}
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{Category: category}, nil
}
