// Package template contains expense template use cases.
package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/application/usecase/allocation"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/period"
)

// GeneratePeriodInput represents the input for billing-period generation.
// Period may be any date inside the target month; it is normalized to the
// first day.
type GeneratePeriodInput struct {
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Period      time.Time
}

// GeneratePeriodOutput holds only the line items created by this invocation.
// Items that already existed for the period are skipped, not re-returned.
type GeneratePeriodOutput struct {
	Created []*entity.LineItemWithAllocations
}

// GeneratePeriodUseCase expands the household's active expense templates into
// line items for one billing period. Generation is idempotent: a template that
// already produced an item for the period is silently skipped, so the
// operation is safe to invoke repeatedly.
type GeneratePeriodUseCase struct {
	templateRepo  adapter.TemplateRepository
	lineItemRepo  adapter.LineItemRepository
	householdRepo adapter.HouseholdRepository
}

// NewGeneratePeriodUseCase creates a new GeneratePeriodUseCase instance.
func NewGeneratePeriodUseCase(
	templateRepo adapter.TemplateRepository,
	lineItemRepo adapter.LineItemRepository,
	householdRepo adapter.HouseholdRepository,
) *GeneratePeriodUseCase {
	return &GeneratePeriodUseCase{
		templateRepo:  templateRepo,
		lineItemRepo:  lineItemRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the period generation.
func (uc *GeneratePeriodUseCase) Execute(ctx context.Context, input GeneratePeriodInput) (*GeneratePeriodOutput, error) {
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

	billingPeriod := period.StartOfMonth(input.Period)

	templates, err := uc.templateRepo.FindActiveByHousehold(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active templates: %w", err)
	}

	memberIDs, err := uc.householdRepo.ActiveMemberUserIDs(ctx, input.HouseholdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active members: %w", err)
	}

	created := make([]*entity.LineItemWithAllocations, 0, len(templates))
	for _, template := range templates {
		item, allocations, err := uc.generateForTemplate(ctx, template, billingPeriod, input.ActorID, memberIDs)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		created = append(created, &entity.LineItemWithAllocations{LineItem: item, Allocations: allocations})
	}

	slog.Info("billing period generated",
		"household_id", input.HouseholdID,
		"period", billingPeriod.Format(period.Layout),
		"templates", len(templates),
		"created", len(created))

	return &GeneratePeriodOutput{Created: created}, nil
}

// generateForTemplate creates the line item and allocations for one template,
// returning (nil, nil, nil) when the period was already generated. The
// existence lookup keeps repeated invocations silent; the uniqueness
// constraint on (household, template, period) backstops concurrent calls, and
// a duplicate-key rejection is treated as the same silent skip.
func (uc *GeneratePeriodUseCase) generateForTemplate(
	ctx context.Context,
	template *entity.ExpenseTemplate,
	billingPeriod time.Time,
	actorID uuid.UUID,
	memberIDs []uuid.UUID,
) (*entity.LineItem, []*entity.Allocation, error) {
	exists, err := uc.lineItemRepo.ExistsForTemplateAndPeriod(ctx, template.HouseholdID, template.ID, billingPeriod)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check existing line item: %w", err)
	}
	if exists {
		return nil, nil, nil
	}

	if !period.ValidDueDay(template.DueDay) {
		return nil, nil, domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidDueDay,
			fmt.Sprintf("template %s has an invalid due day %d", template.ID, template.DueDay),
			domainerror.ErrInvalidDueDay,
		)
	}
	dueDate := period.DueDateIn(billingPeriod, template.DueDay)

	var rules []*entity.SplitRule
	if template.Scope == entity.ScopeShared && template.Policy != entity.PolicyEqual {
		rules, err = uc.templateRepo.FindRulesByTemplate(ctx, template.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load split rules: %w", err)
		}
	}

	shares, err := allocation.Split(template.Amount, template.Scope, template.Policy, template.OwnerID, memberIDs, rules)
	if err != nil {
		return nil, nil, err
	}

	item := entity.NewLineItem(
		template.HouseholdID,
		template.SubcategoryID,
		template.Scope,
		template.OwnerID,
		template.Name,
		billingPeriod,
		dueDate,
		template.Amount,
		actorID,
		actorID,
	)
	templateID := template.ID
	item.TemplateID = &templateID

	allocations := allocation.ToAllocations(item.ID, shares)

	if err := uc.lineItemRepo.CreateWithAllocations(ctx, item, allocations); err != nil {
		if errors.Is(err, adapter.ErrDuplicateLineItem) {
			// Lost the race to a concurrent generation; same silent skip.
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to create line item: %w", err)
	}

	return item, allocations, nil
}
