// Package template contains expense template use cases, including the
// recurring expense generator that expands templates into billing-period
// line items.
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

// CreateTemplateInput represents the input for template creation.
type CreateTemplateInput struct {
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	Name          string
	SubcategoryID uuid.UUID
	Scope         entity.ExpenseScope
	OwnerID       *uuid.UUID
	Amount        decimal.Decimal
	DueDay        int
	Recurring     bool
	Periodicity   entity.Periodicity
	Policy        entity.SplitPolicy
}

// CreateTemplateOutput represents the output of template creation.
type CreateTemplateOutput struct {
	Template *entity.ExpenseTemplate
}

// CreateTemplateUseCase handles expense template creation logic.
type CreateTemplateUseCase struct {
	templateRepo  adapter.TemplateRepository
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreateTemplateUseCase creates a new CreateTemplateUseCase instance.
func NewCreateTemplateUseCase(
	templateRepo adapter.TemplateRepository,
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *CreateTemplateUseCase {
	return &CreateTemplateUseCase{
		templateRepo:  templateRepo,
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the template creation.
func (uc *CreateTemplateUseCase) Execute(ctx context.Context, input CreateTemplateInput) (*CreateTemplateOutput, error) {
	if err := validateScopeAndOwner(input.Scope, input.OwnerID); err != nil {
		return nil, err
	}
	if err := validatePolicy(input.Policy); err != nil {
		return nil, err
	}
	if err := validatePeriodicity(input.Periodicity); err != nil {
		return nil, err
	}
	if !period.ValidDueDay(input.DueDay) {
		return nil, domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidDueDay,
			"due day must be between 1 and 31",
			domainerror.ErrInvalidDueDay,
		)
	}

	// Verify actor membership
	isMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, input.ActorID)
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

	// A personal owner must be an active member too
	if input.OwnerID != nil {
		isOwnerMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, *input.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check owner membership: %w", err)
		}
		if !isOwnerMember {
			return nil, domainerror.NewTemplateError(
				domainerror.ErrCodeRuleMemberNotActive,
				"owner is not an active member of the household",
				domainerror.ErrRuleMemberNotActive,
			)
		}
	}

	if err := verifySubcategory(ctx, uc.categoryRepo, input.HouseholdID, input.SubcategoryID); err != nil {
		return nil, err
	}

	template := entity.NewExpenseTemplate(
		input.HouseholdID,
		input.Name,
		input.SubcategoryID,
		input.Scope,
		input.OwnerID,
		input.Amount,
		input.DueDay,
		input.Recurring,
		input.Periodicity,
		input.Policy,
	)

	if err := uc.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return &CreateTemplateOutput{Template: template}, nil
}

// verifySubcategory checks that the subcategory exists and that its parent
// category belongs to the household.
func verifySubcategory(ctx context.Context, categoryRepo adapter.CategoryRepository, householdID, subcategoryID uuid.UUID) error {
	subcategory, err := categoryRepo.FindSubcategoryByID(ctx, subcategoryID)
	if err != nil {
		return fmt.Errorf("failed to find subcategory: %w", err)
	}
	if subcategory != nil {
		category, err := categoryRepo.FindByID(ctx, subcategory.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to find category: %w", err)
		}
		if category != nil && category.HouseholdID == householdID {
			return nil
		}
	}
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotInHousehold,
		"subcategory does not belong to household",
		domainerror.ErrCategoryNotInHousehold,
	)
}

// validateScopeAndOwner enforces the scope/owner pairing: personal requires
// an owner, shared forbids one.
func validateScopeAndOwner(scope entity.ExpenseScope, ownerID *uuid.UUID) error {
	switch scope {
	case entity.ScopePersonal:
		if ownerID == nil {
			return domainerror.NewTemplateError(
				domainerror.ErrCodeMissingTemplateOwner,
				"personal expenses require an owner",
				domainerror.ErrMissingOwner,
			)
		}
	case entity.ScopeShared:
		if ownerID != nil {
			return domainerror.NewTemplateError(
				domainerror.ErrCodeOwnerForbidden,
				"shared expenses must not have an owner",
				domainerror.ErrOwnerForbidden,
			)
		}
	default:
		return domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidScope,
			"expense scope must be 'shared' or 'personal'",
			domainerror.ErrInvalidScope,
		)
	}
	return nil
}

// validatePolicy checks the split policy value.
func validatePolicy(policy entity.SplitPolicy) error {
	switch policy {
	case entity.PolicyEqual, entity.PolicyPercentage, entity.PolicyFixedAmount:
		return nil
	default:
		return domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidPolicy,
			"split policy must be 'equal', 'percentage' or 'fixed_amount'",
			domainerror.ErrInvalidPolicy,
		)
	}
}

// validatePeriodicity checks the periodicity value.
func validatePeriodicity(periodicity entity.Periodicity) error {
	switch periodicity {
	case entity.PeriodicityMonthly, entity.PeriodicityYearly, entity.PeriodicityOnce:
		return nil
	default:
		return domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidPeriodicity,
			"periodicity must be 'monthly', 'yearly' or 'once'",
			domainerror.ErrInvalidPeriodicity,
		)
	}
}
