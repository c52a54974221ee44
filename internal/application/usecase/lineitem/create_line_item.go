// Package lineitem contains line item use cases: manual entry, edits that
// recompute allocations, and the settlement transitions.
package lineitem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/application/usecase/allocation"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// CreateLineItemInput represents the input for manual line item creation.
type CreateLineItemInput struct {
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	SubcategoryID uuid.UUID
	Scope         entity.ExpenseScope
	OwnerID       *uuid.UUID
	Description   string
	BillingPeriod time.Time
	DueDate       time.Time
	TotalAmount   decimal.Decimal
	PayerID       *uuid.UUID // defaults to the actor
}

// CreateLineItemOutput represents the output of manual line item creation.
type CreateLineItemOutput struct {
	Item        *entity.LineItem
	Allocations []*entity.Allocation
}

// CreateLineItemUseCase handles one-off line items that do not originate from
// a template or purchase. Manual items always split equally when shared.
type CreateLineItemUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreateLineItemUseCase creates a new CreateLineItemUseCase instance.
func NewCreateLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *CreateLineItemUseCase {
	return &CreateLineItemUseCase{
		lineItemRepo:  lineItemRepo,
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the manual line item creation.
func (uc *CreateLineItemUseCase) Execute(ctx context.Context, input CreateLineItemInput) (*CreateLineItemOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}
	if err := validateScopeAndOwner(input.Scope, input.OwnerID); err != nil {
		return nil, err
	}
	if !input.TotalAmount.IsPositive() {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeInvalidLineItemAmount,
			"line item total must be positive",
			domainerror.ErrInvalidLineItemAmount,
		)
	}
	if input.BillingPeriod.IsZero() {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeInvalidBillingPeriod,
			"billing period is required",
			domainerror.ErrInvalidBillingPeriod,
		)
	}
	if err := verifySubcategory(ctx, uc.categoryRepo, input.HouseholdID, input.SubcategoryID); err != nil {
		return nil, err
	}

	payerID := input.ActorID
	if input.PayerID != nil {
		payerID = *input.PayerID
	}

	item := entity.NewLineItem(
		input.HouseholdID,
		input.SubcategoryID,
		input.Scope,
		input.OwnerID,
		input.Description,
		period.StartOfMonth(input.BillingPeriod),
		input.DueDate,
		input.TotalAmount,
		payerID,
		input.ActorID,
	)

	allocations, err := uc.allocate(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := uc.lineItemRepo.CreateWithAllocations(ctx, item, allocations); err != nil {
		return nil, fmt.Errorf("failed to create line item: %w", err)
	}

	return &CreateLineItemOutput{Item: item, Allocations: allocations}, nil
}

// allocate runs the splitting engine for a manual item: personal to the owner,
// shared equally among active members.
func (uc *CreateLineItemUseCase) allocate(ctx context.Context, item *entity.LineItem) ([]*entity.Allocation, error) {
	memberIDs, err := uc.householdRepo.ActiveMemberUserIDs(ctx, item.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}
	shares, err := allocation.Split(item.TotalAmount, item.Scope, entity.PolicyEqual, item.OwnerID, memberIDs, nil)
	if err != nil {
		return nil, err
	}
	return allocation.ToAllocations(item.ID, shares), nil
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

// validateScopeAndOwner enforces the scope/owner pairing: personal requires
// an owner, shared forbids one.
func validateScopeAndOwner(scope entity.ExpenseScope, ownerID *uuid.UUID) error {
	switch scope {
	case entity.ScopePersonal:
		if ownerID == nil {
			return domainerror.NewAllocationError(
				domainerror.ErrCodeMissingOwner,
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
