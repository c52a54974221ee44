// Package template contains expense template use cases.
package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/application/adapter"
	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/money"
)

// RuleInput is one member's override rule: percentage XOR fixed amount.
type RuleInput struct {
	MemberID    uuid.UUID
	Percentage  *decimal.Decimal
	FixedAmount *decimal.Decimal
}

// ReplaceRulesInput represents the input for replacing a template's split rules.
type ReplaceRulesInput struct {
	TemplateID  uuid.UUID
	HouseholdID uuid.UUID
	ActorID     uuid.UUID
	Rules       []RuleInput
}

// ReplaceRulesOutput represents the output of a rule replacement.
type ReplaceRulesOutput struct {
	Rules []*entity.SplitRule
}

// ReplaceRulesUseCase atomically replaces a shared template's split rules
// after validating them against the template's policy. Rules are never
// patched individually; the whole set is swapped so it always balances.
type ReplaceRulesUseCase struct {
	templateRepo  adapter.TemplateRepository
	householdRepo adapter.HouseholdRepository
}

// NewReplaceRulesUseCase creates a new ReplaceRulesUseCase instance.
func NewReplaceRulesUseCase(
	templateRepo adapter.TemplateRepository,
	householdRepo adapter.HouseholdRepository,
) *ReplaceRulesUseCase {
	return &ReplaceRulesUseCase{
		templateRepo:  templateRepo,
		householdRepo: householdRepo,
	}
}

// Execute performs the rule replacement.
func (uc *ReplaceRulesUseCase) Execute(ctx context.Context, input ReplaceRulesInput) (*ReplaceRulesOutput, error) {
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

	template, err := uc.templateRepo.FindByID(ctx, input.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find template: %w", err)
	}
	if template == nil || template.HouseholdID != input.HouseholdID {
		return nil, domainerror.NewTemplateError(
			domainerror.ErrCodeTemplateNotFound,
			"expense template not found",
			domainerror.ErrTemplateNotFound,
		)
	}

	// Override rules only apply to shared templates
	if template.Scope != entity.ScopeShared {
		return nil, domainerror.NewTemplateError(
			domainerror.ErrCodeInvalidSplitRule,
			"split rules only apply to shared templates",
			domainerror.ErrInvalidSplitRule,
		)
	}

	if err := uc.validateRules(ctx, template, input.Rules); err != nil {
		return nil, err
	}

	rules := make([]*entity.SplitRule, len(input.Rules))
	for i, ruleInput := range input.Rules {
		rules[i] = entity.NewSplitRule(template.ID, ruleInput.MemberID, ruleInput.Percentage, ruleInput.FixedAmount)
	}

	if err := uc.templateRepo.ReplaceRules(ctx, template.ID, rules); err != nil {
		return nil, fmt.Errorf("failed to replace split rules: %w", err)
	}

	return &ReplaceRulesOutput{Rules: rules}, nil
}

// validateRules checks rule fields against the template policy and validates
// the balance: percentages sum to 100, fixed amounts sum to the template amount.
func (uc *ReplaceRulesUseCase) validateRules(ctx context.Context, template *entity.ExpenseTemplate, rules []RuleInput) error {
	pctSum := decimal.Zero
	fixedSum := decimal.Zero

	for _, rule := range rules {
		isMember, err := uc.householdRepo.IsActiveMember(ctx, template.HouseholdID, rule.MemberID)
		if err != nil {
			return fmt.Errorf("failed to check rule member: %w", err)
		}
		if !isMember {
			return domainerror.NewTemplateError(
				domainerror.ErrCodeRuleMemberNotActive,
				"split rule member is not an active household member",
				domainerror.ErrRuleMemberNotActive,
			)
		}

		switch template.Policy {
		case entity.PolicyPercentage:
			if rule.Percentage == nil || rule.FixedAmount != nil {
				return domainerror.NewTemplateError(
					domainerror.ErrCodeInvalidSplitRule,
					"percentage policy rules must set percentage only",
					domainerror.ErrInvalidSplitRule,
				)
			}
			if rule.Percentage.IsNegative() || rule.Percentage.GreaterThan(money.Percent100) {
				return domainerror.NewTemplateError(
					domainerror.ErrCodeInvalidSplitRule,
					"percentage must be between 0 and 100",
					domainerror.ErrInvalidSplitRule,
				)
			}
			pctSum = pctSum.Add(*rule.Percentage)
		case entity.PolicyFixedAmount:
			if rule.FixedAmount == nil || rule.Percentage != nil {
				return domainerror.NewTemplateError(
					domainerror.ErrCodeInvalidSplitRule,
					"fixed-amount policy rules must set a fixed amount only",
					domainerror.ErrInvalidSplitRule,
				)
			}
			fixedSum = fixedSum.Add(*rule.FixedAmount)
		default:
			// Equal policy needs no rules at all
			return domainerror.NewTemplateError(
				domainerror.ErrCodeInvalidSplitRule,
				"equal policy templates do not take split rules",
				domainerror.ErrInvalidSplitRule,
			)
		}
	}

	if template.Policy == entity.PolicyPercentage && len(rules) > 0 {
		if pctSum.Sub(money.Percent100).Abs().GreaterThan(money.SplitTolerance) {
			return domainerror.NewAllocationError(
				domainerror.ErrCodeUnbalancedAllocation,
				"rule percentages must sum to 100",
				domainerror.ErrUnbalancedAllocation,
			)
		}
	}
	if template.Policy == entity.PolicyFixedAmount && len(rules) > 0 {
		if fixedSum.Sub(template.Amount).Abs().GreaterThan(money.SplitTolerance) {
			return domainerror.NewAllocationError(
				domainerror.ErrCodeUnbalancedAllocation,
				"rule amounts must sum to the template amount",
				domainerror.ErrUnbalancedAllocation,
			)
		}
	}

	return nil
}
