// Package lineitem contains line item use cases.
package lineitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// GetLineItemInput represents the input for fetching a single line item.
type GetLineItemInput struct {
	LineItemID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// GetLineItemOutput represents the output of fetching a line item.
type GetLineItemOutput struct {
	Item        *entity.LineItem
	Allocations []*entity.Allocation
}

// GetLineItemUseCase fetches a line item with its allocation breakdown.
type GetLineItemUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
}

// NewGetLineItemUseCase creates a new GetLineItemUseCase instance.
func NewGetLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
) *GetLineItemUseCase {
	return &GetLineItemUseCase{
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
	}
}

// Execute fetches the line item and its allocations.
func (uc *GetLineItemUseCase) Execute(ctx context.Context, input GetLineItemInput) (*GetLineItemOutput, error) {
	item, err := findHouseholdItem(ctx, uc.lineItemRepo, uc.householdRepo, input.LineItemID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}

	allocations, err := uc.lineItemRepo.FindAllocationsByLineItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}

	return &GetLineItemOutput{Item: item, Allocations: allocations}, nil
}
