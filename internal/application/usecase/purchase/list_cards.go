// Package purchase contains credit card and installment purchase use cases.
package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// ListCardsInput represents the input for listing credit cards.
type ListCardsInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// ListCardsOutput represents the output of listing credit cards.
type ListCardsOutput struct {
	Cards []*entity.CreditCard
}

// ListCardsUseCase handles listing the household's credit cards.
type ListCardsUseCase struct {
	purchaseRepo  adapter.PurchaseRepository
	householdRepo adapter.HouseholdRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(
	purchaseRepo adapter.PurchaseRepository,
	householdRepo adapter.HouseholdRepository,
) *ListCardsUseCase {
	return &ListCardsUseCase{
		purchaseRepo:  purchaseRepo,
		householdRepo: householdRepo,
	}
}

// Execute returns all credit cards of the household.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	cards, err := uc.purchaseRepo.FindCardsByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}

	return &ListCardsOutput{Cards: cards}, nil
}
