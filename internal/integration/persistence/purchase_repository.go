package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	"github.com/shared-expenses/backend/internal/integration/persistence/model"
)

// purchaseRepository implements the adapter.PurchaseRepository interface using GORM.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository instance.
func NewPurchaseRepository(db *gorm.DB) adapter.PurchaseRepository {
	return &purchaseRepository{db: db}
}

// CreateCard creates a new credit card in the database.
func (r *purchaseRepository) CreateCard(ctx context.Context, card *entity.CreditCard) error {
	cardModel := model.CreditCardFromEntity(card)
	if err := r.db.WithContext(ctx).Create(cardModel).Error; err != nil {
		return fmt.Errorf("failed to create credit card: %w", err)
	}
	return nil
}

// FindCardByID retrieves a credit card by its ID. Returns nil when none matches.
func (r *purchaseRepository) FindCardByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error) {
	var cardModel model.CreditCardModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cardModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}
	return cardModel.ToEntity(), nil
}

// FindCardsByHousehold retrieves all credit cards of a household.
func (r *purchaseRepository) FindCardsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CreditCard, error) {
	var cardModels []model.CreditCardModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&cardModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find credit cards: %w", err)
	}
	cards := make([]*entity.CreditCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// UpdateCard updates a credit card.
func (r *purchaseRepository) UpdateCard(ctx context.Context, card *entity.CreditCard) error {
	cardModel := model.CreditCardFromEntity(card)
	if err := r.db.WithContext(ctx).Save(cardModel).Error; err != nil {
		return fmt.Errorf("failed to update credit card: %w", err)
	}
	return nil
}

// FindPurchaseByID retrieves a card purchase by its ID. Returns nil when none matches.
func (r *purchaseRepository) FindPurchaseByID(ctx context.Context, id uuid.UUID) (*entity.CardPurchase, error) {
	var purchaseModel model.CardPurchaseModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&purchaseModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find card purchase: %w", err)
	}
	return purchaseModel.ToEntity(), nil
}

// FindPurchasesByHousehold retrieves all card purchases of a household,
// most recent first.
func (r *purchaseRepository) FindPurchasesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*entity.CardPurchase, error) {
	var purchaseModels []model.CardPurchaseModel
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at DESC").
		Find(&purchaseModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find card purchases: %w", err)
	}
	purchases := make([]*entity.CardPurchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToEntity()
	}
	return purchases, nil
}
