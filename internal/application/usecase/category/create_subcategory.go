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

// CreateSubcategoryInput represents the input for subcategory creation.
type CreateSubcategoryInput struct {
	CategoryID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Name        string
}

// CreateSubcategoryOutput represents the output of subcategory creation.
type CreateSubcategoryOutput struct {
	Subcategory *entity.Subcategory
}

// CreateSubcategoryUseCase handles subcategory creation under an existing
// household category.
type CreateSubcategoryUseCase struct {
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreateSubcategoryUseCase creates a new CreateSubcategoryUseCase instance.
func NewCreateSubcategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *CreateSubcategoryUseCase {
	return &CreateSubcategoryUseCase{
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the subcategory creation.
func (uc *CreateSubcategoryUseCase) Execute(ctx context.Context, input CreateSubcategoryInput) (*CreateSubcategoryOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryName,
			"subcategory name is required",
			domainerror.ErrMissingCategoryName,
		)
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

	subcategory := entity.NewSubcategory(category.ID, name)
	if err := uc.categoryRepo.CreateSubcategory(ctx, subcategory); err != nil {
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}

	return &CreateSubcategoryOutput{Subcategory: subcategory}, nil
}
