package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Brand       string          `gorm:"type:varchar(20);not null"`
	Limit       decimal.Decimal `gorm:"column:card_limit;type:decimal(15,2);not null"`
	ClosingDay  int             `gorm:"not null"`
	DueDay      int             `gorm:"not null"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:          m.ID,
		HouseholdID: m.HouseholdID,
		Name:        m.Name,
		Brand:       entity.CardBrand(m.Brand),
		Limit:       m.Limit,
		ClosingDay:  m.ClosingDay,
		DueDay:      m.DueDay,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CreditCardFromEntity creates a CreditCardModel from a domain CreditCard entity.
func CreditCardFromEntity(card *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:          card.ID,
		HouseholdID: card.HouseholdID,
		Name:        card.Name,
		Brand:       string(card.Brand),
		Limit:       card.Limit,
		ClosingDay:  card.ClosingDay,
		DueDay:      card.DueDay,
		Active:      card.Active,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

// CardPurchaseModel represents the card_purchases table in the database.
type CardPurchaseModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HouseholdID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CardID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description      string          `gorm:"type:varchar(255);not null"`
	SubcategoryID    uuid.UUID       `gorm:"type:uuid;not null"`
	Scope            string          `gorm:"type:varchar(20);not null"`
	OwnerID          *uuid.UUID      `gorm:"type:uuid"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InstallmentCount int             `gorm:"not null"`
	FirstPeriod      time.Time       `gorm:"type:date;not null"`
	FirstDueDate     time.Time       `gorm:"type:date;not null"`
	PayerID          uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CardPurchaseModel.
func (CardPurchaseModel) TableName() string {
	return "card_purchases"
}

// ToEntity converts a CardPurchaseModel to a domain CardPurchase entity.
func (m *CardPurchaseModel) ToEntity() *entity.CardPurchase {
	return &entity.CardPurchase{
		ID:               m.ID,
		HouseholdID:      m.HouseholdID,
		CardID:           m.CardID,
		Description:      m.Description,
		SubcategoryID:    m.SubcategoryID,
		Scope:            entity.ExpenseScope(m.Scope),
		OwnerID:          m.OwnerID,
		TotalAmount:      m.TotalAmount,
		InstallmentCount: m.InstallmentCount,
		FirstPeriod:      m.FirstPeriod,
		FirstDueDate:     m.FirstDueDate,
		PayerID:          m.PayerID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CardPurchaseFromEntity creates a CardPurchaseModel from a domain CardPurchase entity.
func CardPurchaseFromEntity(purchase *entity.CardPurchase) *CardPurchaseModel {
	return &CardPurchaseModel{
		ID:               purchase.ID,
		HouseholdID:      purchase.HouseholdID,
		CardID:           purchase.CardID,
		Description:      purchase.Description,
		SubcategoryID:    purchase.SubcategoryID,
		Scope:            string(purchase.Scope),
		OwnerID:          purchase.OwnerID,
		TotalAmount:      purchase.TotalAmount,
		InstallmentCount: purchase.InstallmentCount,
		FirstPeriod:      purchase.FirstPeriod,
		FirstDueDate:     purchase.FirstDueDate,
		PayerID:          purchase.PayerID,
		CreatedAt:        purchase.CreatedAt,
		UpdatedAt:        purchase.UpdatedAt,
	}
}
