// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemStatus tracks a line item through its settlement lifecycle.
// Pending is the initial state; Paid and Cancelled are terminal.
type LineItemStatus string

const (
	StatusPending   LineItemStatus = "pending"
	StatusPaid      LineItemStatus = "paid"
	StatusCancelled LineItemStatus = "cancelled"
)

// LineItem is the generated unit of expense for one billing period. It may
// originate from an expense template, from a card-purchase installment, or
// from manual entry.
type LineItem struct {
	ID                uuid.UUID
	HouseholdID       uuid.UUID
	TemplateID        *uuid.UUID // nulled if the template is deleted, never cascaded
	PurchaseID        *uuid.UUID
	InstallmentNumber *int
	InstallmentCount  *int
	SubcategoryID     uuid.UUID
	Scope             ExpenseScope
	OwnerID           *uuid.UUID // required iff Scope == personal
	Description       string
	BillingPeriod     time.Time // first-of-month date
	DueDate           time.Time
	TotalAmount       decimal.Decimal
	Status            LineItemStatus
	PaymentDate       *time.Time
	PayerID           uuid.UUID
	CreatedByID       uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewLineItem creates a new pending LineItem entity.
func NewLineItem(
	householdID uuid.UUID,
	subcategoryID uuid.UUID,
	scope ExpenseScope,
	ownerID *uuid.UUID,
	description string,
	billingPeriod, dueDate time.Time,
	totalAmount decimal.Decimal,
	payerID, createdByID uuid.UUID,
) *LineItem {
	now := time.Now().UTC()
	return &LineItem{
		ID:            uuid.New(),
		HouseholdID:   householdID,
		SubcategoryID: subcategoryID,
		Scope:         scope,
		OwnerID:       ownerID,
		Description:   description,
		BillingPeriod: billingPeriod,
		DueDate:       dueDate,
		TotalAmount:   totalAmount,
		Status:        StatusPending,
		PayerID:       payerID,
		CreatedByID:   createdByID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsSettled reports whether the line item is in a terminal state.
func (l *LineItem) IsSettled() bool {
	return l.Status == StatusPaid || l.Status == StatusCancelled
}

// Allocation is one member's owed share of a line item. For a given line item
// the allocation amounts always sum exactly to the item's total.
type Allocation struct {
	ID         uuid.UUID
	LineItemID uuid.UUID
	MemberID   uuid.UUID // user ID of the member
	Percentage *decimal.Decimal
	Amount     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAllocation creates a new Allocation entity.
func NewAllocation(lineItemID, memberID uuid.UUID, percentage *decimal.Decimal, amount decimal.Decimal) *Allocation {
	now := time.Now().UTC()
	return &Allocation{
		ID:         uuid.New(),
		LineItemID: lineItemID,
		MemberID:   memberID,
		Percentage: percentage,
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// LineItemWithAllocations represents a line item and its member shares.
type LineItemWithAllocations struct {
	LineItem    *LineItem
	Allocations []*Allocation
}
