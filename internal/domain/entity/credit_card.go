// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardBrand represents the brand of a credit card.
type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
	BrandElo        CardBrand = "elo"
	BrandAmex       CardBrand = "amex"
	BrandOther      CardBrand = "other"
)

// CreditCard represents a household credit card used for installment purchases.
type CreditCard struct {
	ID          uuid.UUID
	HouseholdID uuid.UUID
	Name        string
	Brand       CardBrand
	Limit       decimal.Decimal
	ClosingDay  int
	DueDay      int
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCreditCard creates a new active CreditCard entity.
func NewCreditCard(householdID uuid.UUID, name string, brand CardBrand, limit decimal.Decimal, closingDay, dueDay int) *CreditCard {
	now := time.Now().UTC()
	return &CreditCard{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Name:        name,
		Brand:       brand,
		Limit:       limit,
		ClosingDay:  closingDay,
		DueDay:      dueDay,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CardPurchase groups the installments of a credit-card purchase. Each
// installment becomes one LineItem when the purchase is expanded.
type CardPurchase struct {
	ID               uuid.UUID
	HouseholdID      uuid.UUID
	CardID           uuid.UUID
	Description      string
	SubcategoryID    uuid.UUID
	Scope            ExpenseScope
	OwnerID          *uuid.UUID // required iff Scope == personal
	TotalAmount      decimal.Decimal
	InstallmentCount int
	FirstPeriod      time.Time // billing period of the first installment (first of month)
	FirstDueDate     time.Time
	PayerID          uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewCardPurchase creates a new CardPurchase entity.
func NewCardPurchase(
	householdID, cardID uuid.UUID,
	description string,
	subcategoryID uuid.UUID,
	scope ExpenseScope,
	ownerID *uuid.UUID,
	totalAmount decimal.Decimal,
	installmentCount int,
	firstPeriod, firstDueDate time.Time,
	payerID uuid.UUID,
) *CardPurchase {
	now := time.Now().UTC()
	return &CardPurchase{
		ID:               uuid.New(),
		HouseholdID:      householdID,
		CardID:           cardID,
		Description:      description,
		SubcategoryID:    subcategoryID,
		Scope:            scope,
		OwnerID:          ownerID,
		TotalAmount:      totalAmount,
		InstallmentCount: installmentCount,
		FirstPeriod:      firstPeriod,
		FirstDueDate:     firstDueDate,
		PayerID:          payerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
