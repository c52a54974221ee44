// Package template contains expense template use cases.
package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// DeleteTemplateInput represents the input for template deletion.
type DeleteTemplateInput struct {
	TemplateID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// DeleteTemplateUseCase handles expense template deletion. Historical line
// items generated from the template survive with a null template reference.
type DeleteTemplateUseCase struct {
	templateRepo  adapter.TemplateRepository
	householdRepo adapter.HouseholdRepository
}

// NewDeleteTemplateUseCase creates a new DeleteTemplateUseCase instance.
func NewDeleteTemplateUseCase(
	templateRepo adapter.TemplateRepository,
	householdRepo adapter.HouseholdRepository,
) *DeleteTemplateUseCase {
	return &DeleteTemplateUseCase{
		templateRepo:  templateRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the template deletion.
func (uc *DeleteTemplateUseCase) Execute(ctx context.Context, input DeleteTemplateInput) error {
	isMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, input.ActorID)
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

	template, err := uc.templateRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		return fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil || template.HouseholdID != input.HouseholdID {
		return domainerror.NewTemplateError(
			domainerror.ErrCodeTemplateNotFound,
			"expense template not found",
			domainerror.ErrTemplateNotFound,
		)
	}

	if err := uc.templateRepo.Delete(ctx, input.TemplateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}
