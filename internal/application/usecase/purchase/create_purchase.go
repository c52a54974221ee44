// Package purchase contains credit card and installment purchase use cases.
package purchase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/application/usecase/allocation"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/money"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// CreatePurchaseInput represents the input for an installment purchase.
type CreatePurchaseInput struct {
	HouseholdID      uuid.UUID
	ActorID          uuid.UUID
	CardID           uuid.UUID
	Description      string
	SubcategoryID    uuid.UUID
	Scope            entity.ExpenseScope
	OwnerID          *uuid.UUID
	TotalAmount      decimal.Decimal
	InstallmentCount int
	FirstPeriod      time.Time
	FirstDueDate     time.Time
	PayerID          *uuid.UUID // defaults to the actor
}

// CreatePurchaseOutput holds the purchase and the line items it expanded into.
type CreatePurchaseOutput struct {
	Purchase *entity.CardPurchase
	Items    []*entity.LineItemWithAllocations
}

// CreatePurchaseUseCase records a credit-card purchase and expands it into its
// installment line items. Expansion happens exactly once, at creation time;
// purchase + items + allocations commit in one transaction.
type CreatePurchaseUseCase struct {
	purchaseRepo  adapter.PurchaseRepository
	lineItemRepo  adapter.LineItemRepository
	categoryRepo  adapter.CategoryRepository
	householdRepo adapter.HouseholdRepository
}

// NewCreatePurchaseUseCase creates a new CreatePurchaseUseCase instance.
func NewCreatePurchaseUseCase(
	purchaseRepo adapter.PurchaseRepository,
	lineItemRepo adapter.LineItemRepository,
	categoryRepo adapter.CategoryRepository,
	householdRepo adapter.HouseholdRepository,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		purchaseRepo:  purchaseRepo,
		lineItemRepo:  lineItemRepo,
		categoryRepo:  categoryRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the purchase creation and installment expansion.
func (uc *CreatePurchaseUseCase) Execute(ctx context.Context, input CreatePurchaseInput) (*CreatePurchaseOutput, error) {
	if err := requireActiveMember(ctx, uc.householdRepo, input.HouseholdID, input.ActorID); err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, input); err != nil {
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

	payerID := input.ActorID
	if input.PayerID != nil {
		payerID = *input.PayerID
	}

	purchase := entity.NewCardPurchase(
		input.HouseholdID,
		input.CardID,
		input.Description,
		input.SubcategoryID,
		input.Scope,
		input.OwnerID,
		input.TotalAmount,
		input.InstallmentCount,
		period.StartOfMonth(input.FirstPeriod),
		input.FirstDueDate,
		payerID,
	)

	items, allocations, err := uc.expand(ctx, purchase, input.ActorID)
	if err != nil {
		return nil, err
	}

	if err := uc.lineItemRepo.CreatePurchaseInstallments(ctx, purchase, items, allocations); err != nil {
		return nil, fmt.Errorf("failed to create purchase installments: %w", err)
	}

	slog.Info("card purchase expanded",
		"household_id", purchase.HouseholdID,
		"purchase_id", purchase.ID,
		"installments", purchase.InstallmentCount,
		"total", purchase.TotalAmount)

	result := make([]*entity.LineItemWithAllocations, len(items))
	for i, item := range items {
		result[i] = &entity.LineItemWithAllocations{LineItem: item, Allocations: allocations[i]}
	}
	return &CreatePurchaseOutput{Purchase: purchase, Items: result}, nil
}

// expand computes the N installment line items and their allocations.
// Purchases carry no per-member rules: personal goes to the owner, shared is
// an equal split among active members.
func (uc *CreatePurchaseUseCase) expand(
	ctx context.Context,
	purchase *entity.CardPurchase,
	actorID uuid.UUID,
) ([]*entity.LineItem, [][]*entity.Allocation, error) {
	amounts, err := money.SplitEvenly(purchase.TotalAmount, purchase.InstallmentCount)
	if err != nil {
		return nil, nil, err
	}

	memberIDs, err := uc.householdRepo.ActiveMemberUserIDs(ctx, purchase.HouseholdID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list active members: %w", err)
	}

	count := purchase.InstallmentCount
	items := make([]*entity.LineItem, count)
	allocations := make([][]*entity.Allocation, count)
	for i := 0; i < count; i++ {
		billingPeriod := period.AddMonths(purchase.FirstPeriod, i)
		dueDate := period.AddMonths(purchase.FirstDueDate, i)
		description := fmt.Sprintf("%s (%d/%d)", purchase.Description, i+1, count)

		item := entity.NewLineItem(
			purchase.HouseholdID,
			purchase.SubcategoryID,
			purchase.Scope,
			purchase.OwnerID,
			description,
			billingPeriod,
			dueDate,
			amounts[i],
			purchase.PayerID,
			actorID,
		)
		purchaseID := purchase.ID
		number := i + 1
		total := count
		item.PurchaseID = &purchaseID
		item.InstallmentNumber = &number
		item.InstallmentCount = &total

		shares, err := allocation.Split(amounts[i], purchase.Scope, entity.PolicyEqual, purchase.OwnerID, memberIDs, nil)
		if err != nil {
			return nil, nil, err
		}

		items[i] = item
		allocations[i] = allocation.ToAllocations(item.ID, shares)
	}
	return items, allocations, nil
}

// validate checks the purchase fields before any lookups.
func (uc *CreatePurchaseUseCase) validate(ctx context.Context, input CreatePurchaseInput) error {
	if err := validateScopeAndOwner(input.Scope, input.OwnerID); err != nil {
		return err
	}
	if input.InstallmentCount < 1 {
		return domainerror.NewPurchaseError(
			domainerror.ErrCodeInvalidInstallmentCount,
			"installment count must be at least 1",
			domainerror.ErrInvalidInstallmentCount,
		)
	}
	if !input.TotalAmount.IsPositive() {
		return domainerror.NewPurchaseError(
			domainerror.ErrCodeInvalidPurchaseAmount,
			"purchase total must be positive",
			domainerror.ErrInvalidPurchaseAmount,
		)
	}

	subcategory, err := uc.categoryRepo.FindSubcategoryByID(ctx, input.SubcategoryID)
	if err != nil {
		return fmt.Errorf("failed to find subcategory: %w", err)
	}
	if subcategory != nil {
		category, err := uc.categoryRepo.FindByID(ctx, subcategory.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to find category: %w", err)
		}
		if category != nil && category.HouseholdID == input.HouseholdID {
			return nil
		}
	}
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotInHousehold,
		"subcategory does not belong to household",
		domainerror.ErrCategoryNotInHousehold,
	)
}

// validateScopeAndOwner enforces the scope/owner pairing: personal requires
// an owner, shared forbids one.
func validateScopeAndOwner(scope entity.ExpenseScope, ownerID *uuid.UUID) error {
	switch scope {
	case entity.ScopePersonal:
		if ownerID == nil {
			return domainerror.NewAllocationError(
				domainerror.ErrCodeMissingOwner,
				"personal expenses require an owner",
				domainerror.ErrMissingOwner,
			)
		}
	case entity.ScopeShared:
		if ownerID != nil {
			return domainerror.NewTemplateError(
				domainerror.ErrCodeOwnerForbidden,
				"shared expenses must not have an owner",
				domainerror.ErrOwnerForbidden,
			)
		}
	default:
		return domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidScope,
			"expense scope must be 'shared' or 'personal'",
			domainerror.ErrInvalidScope,
		)
	}
	return nil
}
