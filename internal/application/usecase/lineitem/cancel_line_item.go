// Package lineitem contains line item use cases.
package lineitem

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// CancelLineItemInput represents the input for cancelling a line item.
type CancelLineItemInput struct {
	LineItemID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// CancelLineItemOutput represents the output of a cancellation.
type CancelLineItemOutput struct {
	Item *entity.LineItem
}

// CancelLineItemUseCase moves a pending line item to cancelled. Paid items
// cannot be cancelled; reversing a payment is not supported. The allocation
// records stay in place and reporting filters them out by status.
type CancelLineItemUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
}

// NewCancelLineItemUseCase creates a new CancelLineItemUseCase instance.
func NewCancelLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
) *CancelLineItemUseCase {
	return &CancelLineItemUseCase{
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the cancellation.
func (uc *CancelLineItemUseCase) Execute(ctx context.Context, input CancelLineItemInput) (*CancelLineItemOutput, error) {
	item, err := findHouseholdItem(ctx, uc.lineItemRepo, uc.householdRepo, input.LineItemID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if item.Status == entity.StatusCancelled {
		return &CancelLineItemOutput{Item: item}, nil
	}
	if item.Status == entity.StatusPaid {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeLineItemAlreadySettled,
			"paid line items cannot be cancelled",
			domainerror.ErrLineItemAlreadySettled,
		)
	}

	item.Status = entity.StatusCancelled
	item.UpdatedAt = time.Now().UTC()

	fields := map[string]interface{}{
		"status":     item.Status,
		"updated_at": item.UpdatedAt,
	}
	if err := uc.lineItemRepo.UpdateFields(ctx, item.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to cancel line item: %w", err)
	}

	return &CancelLineItemOutput{Item: item}, nil
}
