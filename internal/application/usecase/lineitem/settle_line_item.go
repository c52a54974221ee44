// Package lineitem contains line item use cases.
package lineitem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// SettleLineItemInput represents the input for settling a line item. Payment
// date defaults to today, payer stays unchanged when not given.
type SettleLineItemInput struct {
	LineItemID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	PaymentDate *time.Time
	PayerID     *uuid.UUID
}

// SettleLineItemOutput represents the output of a settlement.
type SettleLineItemOutput struct {
	Item *entity.LineItem
}

// SettleLineItemUseCase moves a pending line item to paid. Settling an
// already-paid item is a no-op returning it unchanged, so retried requests
// never clobber the recorded payment date or payer.
type SettleLineItemUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
}

// NewSettleLineItemUseCase creates a new SettleLineItemUseCase instance.
func NewSettleLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
) *SettleLineItemUseCase {
	return &SettleLineItemUseCase{
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the settlement.
func (uc *SettleLineItemUseCase) Execute(ctx context.Context, input SettleLineItemInput) (*SettleLineItemOutput, error) {
	item, err := findHouseholdItem(ctx, uc.lineItemRepo, uc.householdRepo, input.LineItemID, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if item.Status == entity.StatusPaid {
		return &SettleLineItemOutput{Item: item}, nil
	}
	if item.Status == entity.StatusCancelled {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeLineItemCancelled,
			"cancelled line items cannot be settled",
			domainerror.ErrLineItemCancelled,
		)
	}

	paymentDate := time.Now().UTC()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	item.Status = entity.StatusPaid
	item.PaymentDate = &paymentDate
	if input.PayerID != nil {
		item.PayerID = *input.PayerID
	}
	item.UpdatedAt = time.Now().UTC()

	fields := map[string]interface{}{
		"status":       item.Status,
		"payment_date": item.PaymentDate,
		"payer_id":     item.PayerID,
		"updated_at":   item.UpdatedAt,
	}
	if err := uc.lineItemRepo.UpdateFields(ctx, item.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to settle line item: %w", err)
	}

	slog.Info("line item settled",
		"household_id", item.HouseholdID,
		"line_item_id", item.ID,
		"payer_id", item.PayerID)

	return &SettleLineItemOutput{Item: item}, nil
}
