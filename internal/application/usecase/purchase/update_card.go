// Package purchase contains credit card and installment purchase use cases.
package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// UpdateCardInput represents the input for credit card updates. Nil fields are
// left unchanged.
type UpdateCardInput struct {
	CardID      uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Name        *string
	Brand       *entity.CardBrand
	Limit       *decimal.Decimal
	ClosingDay  *int
	DueDay      *int
	Active      *bool
}

// UpdateCardOutput represents the output of a credit card update.
type UpdateCardOutput struct {
	Card *entity.CreditCard
}

// UpdateCardUseCase handles credit card updates.
type UpdateCardUseCase struct {
	purchaseRepo  adapter.PurchaseRepository
	householdRepo adapter.HouseholdRepository
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(
	purchaseRepo adapter.PurchaseRepository,
	householdRepo adapter.HouseholdRepository,
) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		purchaseRepo:  purchaseRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the credit card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	card, err := uc.purchaseRepo.FindCardByID(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}
	if card == nil || card.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewPurchaseError(
			domainerror.ErrCodeCardNotFound,
			"credit card not found",
			domainerror.ErrCardNotFound,
		)
	}

	if input.Name != nil {
		card.Name = *input.Name
	}
	if input.Brand != nil {
		if err := validateBrand(*input.Brand); err != nil {
			return nil, err
		}
		card.Brand = *input.Brand
	}
	if input.Limit != nil {
		card.Limit = *input.Limit
	}
	if input.ClosingDay != nil {
		if !validCardDay(*input.ClosingDay) {
			return nil, domainerror.NewPurchaseError(
				domainerror.ErrCodeInvalidCardDay,
				"closing day must be between 1 and 28",
				domainerror.ErrInvalidCardDay,
			)
		}
		card.ClosingDay = *input.ClosingDay
	}
	if input.DueDay != nil {
		if !validCardDay(*input.DueDay) {
			return nil, domainerror.NewPurchaseError(
				domainerror.ErrCodeInvalidCardDay,
				"due day must be between 1 and 28",
				domainerror.ErrInvalidCardDay,
			)
		}
		card.DueDay = *input.DueDay
	}
	if input.Active != nil {
		card.Active = *input.Active
	}

	if err := uc.purchaseRepo.UpdateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update credit card: %w", err)
	}

	return &UpdateCardOutput{Card: card}, nil
}
