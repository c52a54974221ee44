// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
)

// ErrDuplicateLineItem is returned by CreateWithAllocations when the
// (household, template, billing period) uniqueness constraint rejects the
// insert. Callers treat it as an already-generated period, not a failure.
var ErrDuplicateLineItem = errors.New("line item already exists for template and period")

// LineItemFilter defines filter options for listing line items.
type LineItemFilter struct {
	HouseholdID   uuid.UUID
	BillingPeriod *time.Time
	Status        *entity.LineItemStatus
	Scope         *entity.ExpenseScope
	SubcategoryID *uuid.UUID
}

// CategorySpend is one category's aggregated allocation total.
type CategorySpend struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
}

// AllocationSummary aggregates allocation records for reporting.
type AllocationSummary struct {
	TotalSpent      decimal.Decimal
	SpendByCategory []CategorySpend
}

// LineItemRepository defines the interface for line item and allocation
// persistence operations.
type LineItemRepository interface {
	// CreateWithAllocations creates a line item and its allocation records in
	// one transaction. Returns ErrDuplicateLineItem when the template/period
	// uniqueness backstop rejects the insert.
	CreateWithAllocations(ctx context.Context, item *entity.LineItem, allocations []*entity.Allocation) error

	// CreatePurchaseInstallments creates a purchase together with all its
	// installment line items and their allocations in one transaction.
	CreatePurchaseInstallments(
		ctx context.Context,
		purchase *entity.CardPurchase,
		items []*entity.LineItem,
		allocations [][]*entity.Allocation,
	) error

	// FindByID retrieves a line item by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LineItem, error)

	// FindByFilter retrieves line items matching the filter, ordered by
	// billing period descending then due date.
	FindByFilter(ctx context.Context, filter LineItemFilter) ([]*entity.LineItem, error)

	// ExistsForTemplateAndPeriod checks whether a line item was already
	// generated for (household, template, billing period).
	ExistsForTemplateAndPeriod(ctx context.Context, householdID, templateID uuid.UUID, billingPeriod time.Time) (bool, error)

	// UpdateFields persists only the named fields of a line item.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// UpdateWithAllocations updates a line item and atomically replaces its
	// allocation records, deleting the previous set first.
	UpdateWithAllocations(ctx context.Context, item *entity.LineItem, allocations []*entity.Allocation) error

	// FindAllocationsByLineItem retrieves a line item's allocation records.
	FindAllocationsByLineItem(ctx context.Context, lineItemID uuid.UUID) ([]*entity.Allocation, error)

	// SummarizeAllocations aggregates allocation amounts for a household and
	// billing month, excluding cancelled line items, optionally filtered to a
	// single member.
	SummarizeAllocations(ctx context.Context, householdID uuid.UUID, year int, month time.Month, memberID *uuid.UUID) (*AllocationSummary, error)
}
