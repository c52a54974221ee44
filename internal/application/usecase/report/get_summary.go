// Package report contains the read-side reporting use cases.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
)

// summaryTTL bounds staleness of cached summaries.
const summaryTTL = 5 * time.Minute

// GetSummaryInput represents the input for the household summary. MemberID
// narrows the report to a single member's shares and declared income.
type GetSummaryInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Year        int
	Month       time.Month
	MemberID    *uuid.UUID
}

// CategorySummary is one category's total within a summary.
type CategorySummary struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// GetSummaryOutput is the monthly financial summary of a household.
type GetSummaryOutput struct {
	DeclaredIncome  decimal.Decimal   `json:"declared_income"`
	TotalSpent      decimal.Decimal   `json:"total_spent"`
	SpendByCategory []CategorySummary `json:"spend_by_category"`
}

// GetSummaryUseCase aggregates allocation records into the monthly household
// summary: declared income, total owed, and per-category spend in descending
// order. Cancelled line items never count. Results are cached briefly; the
// cache is best effort and a cache failure falls through to the database.
type GetSummaryUseCase struct {
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
	cache         adapter.ReportCache
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
	cache adapter.ReportCache,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
		cache:         cache,
	}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	isMember, err := uc.householdRepo.IsActiveMember(ctx, input.HouseholdID, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check household membership: %w", err)
	}
	if !isMember {
		return nil, domainerror.NewHouseholdError(
			domainerror.ErrCodeNotHouseholdMember,
			"user is not an active member of the household",
			domainerror.ErrNotHouseholdMember,
		)
	}

	key := cacheKey(input)
	if uc.cache != nil {
		var cached GetSummaryOutput
		found, err := uc.cache.GetSummary(ctx, key, &cached)
		if err != nil {
			slog.Warn("summary cache read failed", "key", key, "error", err)
		} else if found {
			return &cached, nil
		}
	}

	income, err := uc.householdRepo.SumActiveMemberIncomes(ctx, input.HouseholdID, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum member incomes: %w", err)
	}

	summary, err := uc.lineItemRepo.SummarizeAllocations(ctx, input.HouseholdID, input.Year, input.Month, input.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize allocations: %w", err)
	}

	output := &GetSummaryOutput{
		DeclaredIncome:  income,
		TotalSpent:      summary.TotalSpent,
		SpendByCategory: make([]CategorySummary, len(summary.SpendByCategory)),
	}
	for i, spend := range summary.SpendByCategory {
		output.SpendByCategory[i] = CategorySummary{
			CategoryID:   spend.CategoryID,
			CategoryName: spend.CategoryName,
			Amount:       spend.Amount,
		}
	}

	if uc.cache != nil {
		if err := uc.cache.SetSummary(ctx, key, output, summaryTTL); err != nil {
			slog.Warn("summary cache write failed", "key", key, "error", err)
		}
	}

	return output, nil
}

// cacheKey builds the cache key for a summary request.
func cacheKey(input GetSummaryInput) string {
	member := "all"
	if input.MemberID != nil {
		member = input.MemberID.String()
	}
	return fmt.Sprintf("summary:%s:%04d-%02d:%s", input.HouseholdID, input.Year, int(input.Month), member)
}
