// Package purchase contains credit card and installment purchase use cases.
package purchase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
)

// ListPurchasesInput represents the input for listing card purchases.
type ListPurchasesInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
}

// ListPurchasesOutput represents the output of listing card purchases.
type ListPurchasesOutput struct {
	Purchases []*entity.CardPurchase
}

// ListPurchasesUseCase handles listing the household's card purchases.
type ListPurchasesUseCase struct {
	purchaseRepo  adapter.PurchaseRepository
	householdRepo adapter.HouseholdRepository
}

// NewListPurchasesUseCase creates a new ListPurchasesUseCase instance.
func NewListPurchasesUseCase(
	purchaseRepo adapter.PurchaseRepository,
	householdRepo adapter.HouseholdRepository,
) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{
		purchaseRepo:  purchaseRepo,
		householdRepo: householdRepo,
	}
}

// Execute returns all card purchases of the household, most recent first.
func (uc *ListPurchasesUseCase) Execute(ctx context.Context, input ListPurchasesInput) (*ListPurchasesOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}

	purchases, err := uc.purchaseRepo.FindPurchasesByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}

	return &ListPurchasesOutput{Purchases: purchases}, nil
}
