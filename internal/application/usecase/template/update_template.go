// Package template contains expense template use cases.
package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// UpdateTemplateInput represents the input for template updates. Nil fields
// are left unchanged.
type UpdateTemplateInput struct {
	TemplateID    uuid.UUID
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	Name          *string
	SubcategoryID *uuid.UUID
	Amount        *decimal.Decimal
	DueDay        *int
	Recurring     *bool
	Periodicity   *entity.Periodicity
	Policy        *entity.SplitPolicy
	Active        *bool
}

// UpdateTemplateOutput represents the output of a template update.
type UpdateTemplateOutput struct {
	Template *entity.ExpenseTemplate
}

// UpdateTemplateUseCase handles expense template updates. Disabling a
// template stops future generation but never touches past line items.
type UpdateTemplateUseCase struct {
	templateRepo  adapter.TemplateRepository
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewUpdateTemplateUseCase creates a new UpdateTemplateUseCase instance.
func NewUpdateTemplateUseCase(
	templateRepo adapter.TemplateRepository,
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *UpdateTemplateUseCase {
	return &UpdateTemplateUseCase{
		templateRepo:  templateRepo,
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the template update.
func (uc *UpdateTemplateUseCase) Execute(ctx context.Context, input UpdateTemplateInput) (*UpdateTemplateOutput, error) {
	template, err := uc.findOwnedTemplate(ctx, input.TemplateID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		template.Name = *input.Name
	}
	if input.SubcategoryID != nil {
		if err := verifySubcategory(ctx, uc.categoryRepo, input.HouseholdID, *input.SubcategoryID); err != nil {
			return nil, err
		}
		template.SubcategoryID = *input.SubcategoryID
	}
	if input.Amount != nil {
		template.Amount = *input.Amount
	}
	if input.DueDay != nil {
		if !period.ValidDueDay(*input.DueDay) {
			return nil, domainerror.NewTemplateError(
				domainerror.ErrCodeInvalidDueDay,
				"due day must be between 1 and 31",
				domainerror.ErrInvalidDueDay,
			)
		}
		template.DueDay = *input.DueDay
	}
	if input.Recurring != nil {
		template.Recurring = *input.Recurring
	}
	if input.Periodicity != nil {
		if err := validatePeriodicity(*input.Periodicity); err != nil {
			return nil, err
		}
		template.Periodicity = *input.Periodicity
	}
	if input.Policy != nil {
		if err := validatePolicy(*input.Policy); err != nil {
			return nil, err
		}
		// Personal templates always stay on the equal policy
		if template.Scope == entity.ScopePersonal {
			template.Policy = entity.PolicyEqual
		} else {
			template.Policy = *input.Policy
		}
	}
	if input.Active != nil {
		template.Active = *input.Active
	}

	if err := uc.templateRepo.Update(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	return &UpdateTemplateOutput{Template: template}, nil
}

// findOwnedTemplate loads a template and checks it belongs to the actor's household.
func (uc *UpdateTemplateUseCase) findOwnedTemplate(ctx context.Context, templateID, householdID, actorID uuid.UUID) (*entity.ExpenseTemplate, error) {
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

	template, err := uc.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil || template.HouseholdID != householdID {
		return nil, domainerror.NewTemplateError(
			domainerror.ErrCodeTemplateNotFound,
			"expense template not found",
			domainerror.ErrTemplateNotFound,
		)
	}
	return template, nil
}
