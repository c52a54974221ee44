// Package lineitem contains line item use cases.
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
)

// UpdateLineItemInput represents the input for line item edits. Nil fields are
// left unchanged.
type UpdateLineItemInput struct {
	LineItemID    uuid.UUID
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	Description   *string
	SubcategoryID *uuid.UUID
	Scope         *entity.ExpenseScope
	OwnerID       *uuid.UUID
	DueDate       *time.Time
	TotalAmount   *decimal.Decimal
	PayerID       *uuid.UUID
}

// UpdateLineItemOutput represents the output of a line item edit.
type UpdateLineItemOutput struct {
	Item        *entity.LineItem
	Allocations []*entity.Allocation
}

// UpdateLineItemUseCase handles line item edits. Changing the amount or scope
// recomputes the allocation set and replaces it wholesale so the shares never
// go stale. Settled items are immutable.
type UpdateLineItemUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	templateRepo  adapter.TemplateRepository
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewUpdateLineItemUseCase creates a new UpdateLineItemUseCase instance.
func NewUpdateLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	templateRepo adapter.TemplateRepository,
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *UpdateLineItemUseCase {
	return &UpdateLineItemUseCase{
		lineItemRepo:  lineItemRepo,
		templateRepo:  templateRepo,
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the line item edit.
func (uc *UpdateLineItemUseCase) Execute(ctx context.Context, input UpdateLineItemInput) (*UpdateLineItemOutput, error) {
	item, err := findHouseholdItem(ctx, uc.lineItemRepo, uc.householdRepo, input.LineItemID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if item.IsSettled() {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeLineItemAlreadySettled,
			"settled line items cannot be edited",
			domainerror.ErrLineItemAlreadySettled,
		)
	}

	reallocate := false

	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.SubcategoryID != nil {
		if err := verifySubcategory(ctx, uc.categoryRepo, input.HouseholdID, *input.SubcategoryID); err != nil {
			return nil, err
		}
		item.SubcategoryID = *input.SubcategoryID
	}
	if input.Scope != nil {
		owner := item.OwnerID
		if input.OwnerID != nil {
			owner = input.OwnerID
		}
		if *input.Scope == entity.ScopeShared {
			owner = nil
		}
		if err := validateScopeAndOwner(*input.Scope, owner); err != nil {
			return nil, err
		}
		item.Scope = *input.Scope
		item.OwnerID = owner
		reallocate = true
	} else if input.OwnerID != nil {
		if err := validateScopeAndOwner(item.Scope, input.OwnerID); err != nil {
			return nil, err
		}
		item.OwnerID = input.OwnerID
		reallocate = true
	}
	if input.DueDate != nil {
		item.DueDate = *input.DueDate
	}
	if input.TotalAmount != nil {
		if !input.TotalAmount.IsPositive() {
			return nil, domainerror.NewLineItemError(
				domainerror.ErrCodeInvalidLineItemAmount,
				"line item total must be positive",
				domainerror.ErrInvalidLineItemAmount,
			)
		}
		if !input.TotalAmount.Equal(item.TotalAmount) {
			item.TotalAmount = *input.TotalAmount
			reallocate = true
		}
	}
	if input.PayerID != nil {
		item.PayerID = *input.PayerID
	}
	item.UpdatedAt = time.Now().UTC()

	var allocations []*entity.Allocation
	if reallocate {
		allocations, err = uc.reallocate(ctx, item)
		if err != nil {
			return nil, err
		}
		if err := uc.lineItemRepo.UpdateWithAllocations(ctx, item, allocations); err != nil {
			return nil, fmt.Errorf("failed to update line item: %w", err)
		}
	} else {
		fields := map[string]interface{}{
			"description":    item.Description,
			"subcategory_id": item.SubcategoryID,
			"due_date":       item.DueDate,
			"payer_id":       item.PayerID,
			"updated_at":     item.UpdatedAt,
		}
		if err := uc.lineItemRepo.UpdateFields(ctx, item.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update line item: %w", err)
		}
		allocations, err = uc.lineItemRepo.FindAllocationsByLineItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load allocations: %w", err)
		}
	}

	return &UpdateLineItemOutput{Item: item, Allocations: allocations}, nil
}

// reallocate re-runs the splitting engine after an amount or scope change.
// Items generated from a template keep following the template's policy and
// rules; everything else splits equally when shared.
func (uc *UpdateLineItemUseCase) reallocate(ctx context.Context, item *entity.LineItem) ([]*entity.Allocation, error) {
	memberIDs, err := uc.householdRepo.ActiveMemberUserIDs(ctx, item.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}

	policy := entity.PolicyEqual
	var rules []*entity.SplitRule
	if item.TemplateID != nil {
		template, err := uc.templateRepo.FindByID(ctx, *item.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to find template: %w", err)
		}
		if template != nil {
			policy = template.Policy
			if item.Scope == entity.ScopeShared && policy != entity.PolicyEqual {
				rules, err = uc.templateRepo.FindRulesByTemplate(ctx, template.ID)
				if err != nil {
					return nil, fmt.Errorf("failed to load split rules: %w", err)
				}
			}
		}
	}

	shares, err := allocation.Split(item.TotalAmount, item.Scope, policy, item.OwnerID, memberIDs, rules)
	if err != nil {
		return nil, err
	}
	return allocation.ToAllocations(item.ID, shares), nil
}

// findHouseholdItem loads a line item after checking the actor's membership
// and the item's household.
func findHouseholdItem(
	ctx context.Context,
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
	lineItemID, householdID, actorID uuid.UUID,
) (*entity.LineItem, error) {
	if err := requireActiveMember(ctx, householdRepo, householdID, actorID); err != nil {
		return nil, err
	}
	item, err := lineItemRepo.FindByID(ctx, lineItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to find line item: %w", err)
	}
	if item == nil || item.HouseholdID != householdID {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeLineItemNotFound,
			"line item not found",
			domainerror.ErrLineItemNotFound,
		)
	}
	return item, nil
}
