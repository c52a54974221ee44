// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// PurchaseRepository defines the interface for credit card and card purchase
// persistence operations. Installment creation is handled atomically by
// LineItemRepository.CreatePurchaseInstallments.
type PurchaseRepository interface {
	// CreateCard creates a new credit card in the database.
	CreateCard(ctx context.Context, card *entity.CreditCard) error

	// FindCardByID retrieves a credit card by its ID.
	FindCardByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error)

	// FindCardsByHousehold retrieves all credit cards of a household.
	FindCardsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CreditCard, error)

	// UpdateCard updates a credit card.
	UpdateCard(ctx context.Context, card *entity.CreditCard) error

	// FindPurchaseByID retrieves a card purchase by its ID.
	FindPurchaseByID(ctx context.Context, id uuid.UUID) (*entity.CardPurchase, error)

	// FindPurchasesByHousehold retrieves all card purchases of a household,
	// most recent first.
	FindPurchasesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CardPurchase, error)
}
