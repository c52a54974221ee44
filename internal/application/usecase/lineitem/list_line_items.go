// Package lineitem contains line item use cases.
package lineitem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// ListLineItemsInput represents the input for listing line items.
type ListLineItemsInput struct {
	HouseholdID   uuid.UUID
	ActorID       uuid.UUID
	BillingPeriod *time.Time
	Status        *entity.LineItemStatus
	Scope         *entity.ExpenseScope
	SubcategoryID *uuid.UUID
}

// ListLineItemsOutput represents the output of listing line items.
type ListLineItemsOutput struct {
	Items []*entity.LineItem
}

// ListLineItemsUseCase handles listing the household's line items.
type ListLineItemsUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
}

// NewListLineItemsUseCase creates a new ListLineItemsUseCase instance.
func NewListLineItemsUseCase(
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
) *ListLineItemsUseCase {
	return &ListLineItemsUseCase{
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
	}
}

// Execute returns the household's line items matching the filters.
func (uc *ListLineItemsUseCase) Execute(ctx context.Context, input ListLineItemsInput) (*ListLineItemsOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	filter := adapter.LineItemFilter{
		HouseholdID:   input.HouseholdID,
		Status:        input.Status,
		Scope:         input.Scope,
		SubcategoryID: input.SubcategoryID,
	}
	if input.BillingPeriod != nil {
		normalized := period.StartOfMonth(*input.BillingPeriod)
		filter.BillingPeriod = &normalized
	}

	items, err := uc.lineItemRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}

	return &ListLineItemsOutput{Items: items}, nil
}
