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

// UpdateSubcategoryInput represents the input for subcategory updates. Nil
// fields are left unchanged.
type UpdateSubcategoryInput struct {
	SubcategoryID uuid.UUID
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	Name          *string
	Active        *bool
}

// UpdateSubcategoryOutput represents the output of a subcategory update.
type UpdateSubcategoryOutput struct {
	Subcategory *entity.Subcategory
}

// UpdateSubcategoryUseCase handles subcategory updates.
type UpdateSubcategoryUseCase struct {
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewUpdateSubcategoryUseCase creates a new UpdateSubcategoryUseCase instance.
func NewUpdateSubcategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *UpdateSubcategoryUseCase {
	return &UpdateSubcategoryUseCase{
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the subcategory update.
func (uc *UpdateSubcategoryUseCase) Execute(ctx context.Context, input UpdateSubcategoryInput) (*UpdateSubcategoryOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	subcategory, err := uc.categoryRepo.FindSubcategoryByID(ctx, input.SubcategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find subcategory: %w", err)
	}
	if subcategory == nil {
		return nil, subcategoryNotFound()
	}
	category, err := uc.categoryRepo.FindByID(ctx, subcategory.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil || category.HouseholdID != input.HouseholdID {
		return nil, subcategoryNotFound()
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryName,
				"subcategory name is required",
				domainerror.ErrMissingCategoryName,
			)
		}
		subcategory.Name = name
	}
	if input.Active != nil {
		subcategory.Active = *input.Active
	}
	subcategory.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.UpdateSubcategory(ctx, subcategory); err != nil {
		return nil, fmt.Errorf("failed to update subcategory: %w", err)
	}

	return &UpdateSubcategoryOutput{Subcategory: subcategory}, nil
}

func subcategoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeSubcategoryNotFound,
		"subcategory not found",
		domainerror.ErrSubcategoryNotFound,
	)
}
