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

// CreateCardInput represents the input for credit card creation.
type CreateCardInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Name        string
	Brand       entity.CardBrand
	Limit       decimal.Decimal
	ClosingDay  int
	DueDay      int
}

// CreateCardOutput represents the output of credit card creation.
type CreateCardOutput struct {
	Card *entity.CreditCard
}

// CreateCardUseCase handles credit card creation logic.
type CreateCardUseCase struct {
	purchaseRepo  adapter.PurchaseRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(
	purchaseRepo adapter.PurchaseRepository,
	householdRepo adapter.HouseholdRepository,
) *CreateCardUseCase {
	return &CreateCardUseCase{
		purchaseRepo:  purchaseRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the credit card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}
	if err := validateBrand(input.Brand); err != nil {
		return nil, err
	}
	// Days past 28 would drift across short months on every statement
	if !validCardDay(input.ClosingDay) || !validCardDay(input.DueDay) {
		return nil, domainerror.NewPurchaseError(
			domainerror.ErrCodeInvalidCardDay,
			"closing day and due day must be between 1 and 28",
			domainerror.ErrInvalidCardDay,
		)
	}

	card := entity.NewCreditCard(input.HouseholdID, input.Name, input.Brand, input.Limit, input.ClosingDay, input.DueDay)
	if err := uc.purchaseRepo.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	return &CreateCardOutput{Card: card}, nil
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

func validCardDay(day int) bool {
	return day >= 1 && day <= 28
}

// validateBrand checks the card brand value.
func validateBrand(brand entity.CardBrand) error {
	switch brand {
	case entity.BrandVisa, entity.BrandMastercard, entity.BrandElo, entity.BrandAmex, entity.BrandOther:
		return nil
	default:
		return domainerror.NewPurchaseError(
			domainerror.ErrCodeInvalidCardBrand,
			"card brand must be 'visa', 'mastercard', 'elo', 'amex' or 'other'",
			domainerror.ErrInvalidCardBrand,
		)
	}
}
