// Package allocation implements the splitting engine that turns a line item
// total into per-member shares. All functions are pure: callers persist the
// resulting shares, replacing any previous allocation set wholesale so the
// sum-to-total invariant survives edits.
package allocation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shared-expenses/backend/internal/domain/entity"
	domainerror "github.com/shared-expenses/backend/internal/domain/error"
	"github.com/shared-expenses/backend/internal/domain/money"
)

// Share is one member's computed portion of a total. Percentage is nil for
// equal, fixed-amount and personal splits.
type Share struct {
	MemberID   uuid.UUID
	Percentage *decimal.Decimal
	Amount     decimal.Decimal
}

// Split computes the member shares for a line item total.
//
// Personal scope yields a single share owed by the owner. Shared scope
// divides the total over the household's active members according to the
// policy: equally, by percentage rules, or by fixed-amount rules. The
// returned amounts always sum exactly to total; any rounding residual is
// absorbed by the last share in iteration order.
func Split(
	total decimal.Decimal,
	scope entity.ExpenseScope,
	policy entity.SplitPolicy,
	ownerID *uuid.UUID,
	memberIDs []uuid.UUID,
	rules []*entity.SplitRule,
) ([]Share, error) {
	switch scope {
	case entity.ScopePersonal:
		return personalShare(total, ownerID)
	case entity.ScopeShared:
		return sharedShares(total, policy, memberIDs, rules)
	default:
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidAllocation,
			"unknown expense scope",
			domainerror.ErrInvalidAllocation,
		)
	}
}

// personalShare assigns the full amount to the designated owner.
func personalShare(total decimal.Decimal, ownerID *uuid.UUID) ([]Share, error) {
	if ownerID == nil {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeMissingOwner,
			"personal expense requires an owner",
			domainerror.ErrMissingOwner,
		)
	}
	return []Share{{MemberID: *ownerID, Amount: total}}, nil
}

// sharedShares divides the total among members according to the policy.
func sharedShares(
	total decimal.Decimal,
	policy entity.SplitPolicy,
	memberIDs []uuid.UUID,
	rules []*entity.SplitRule,
) ([]Share, error) {
	switch policy {
	case entity.PolicyEqual:
		return equalShares(total, memberIDs)
	case entity.PolicyPercentage:
		return percentageShares(total, rules)
	case entity.PolicyFixedAmount:
		return fixedAmountShares(total, rules)
	default:
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidPolicy,
			"unknown split policy",
			domainerror.ErrInvalidPolicy,
		)
	}
}

// equalShares splits the total evenly across the active members.
func equalShares(total decimal.Decimal, memberIDs []uuid.UUID) ([]Share, error) {
	if len(memberIDs) == 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeNoActiveMembers,
			"household has no active members to split against",
			domainerror.ErrNoActiveMembers,
		)
	}

	amounts, err := money.SplitEvenly(total, len(memberIDs))
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(memberIDs))
	for i, memberID := range memberIDs {
		shares[i] = Share{MemberID: memberID, Amount: amounts[i]}
	}
	return shares, nil
}

// percentageShares splits the total according to percentage rules, which must
// sum to 100 within the accepted tolerance.
func percentageShares(total decimal.Decimal, rules []*entity.SplitRule) ([]Share, error) {
	if len(rules) == 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeMissingSplitRules,
			"percentage policy requires split rules",
			domainerror.ErrMissingSplitRules,
		)
	}

	percentages := make([]decimal.Decimal, len(rules))
	for i, rule := range rules {
		if rule.Percentage == nil {
			return nil, domainerror.NewAllocationError(
				domainerror.ErrCodeUnbalancedAllocation,
				"percentage policy requires a percentage on every rule",
				domainerror.ErrUnbalancedAllocation,
			)
		}
		percentages[i] = *rule.Percentage
	}

	amounts, err := money.SplitByPercentages(total, percentages)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(rules))
	for i, rule := range rules {
		pct := *rule.Percentage
		shares[i] = Share{MemberID: rule.MemberID, Percentage: &pct, Amount: amounts[i]}
	}
	return shares, nil
}

// fixedAmountShares copies the rule amounts verbatim after checking that they
// sum to the total within the accepted tolerance.
func fixedAmountShares(total decimal.Decimal, rules []*entity.SplitRule) ([]Share, error) {
	if len(rules) == 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeMissingSplitRules,
			"fixed-amount policy requires split rules",
			domainerror.ErrMissingSplitRules,
		)
	}

	sum := decimal.Zero
	for _, rule := range rules {
		if rule.FixedAmount == nil {
			return nil, domainerror.NewAllocationError(
				domainerror.ErrCodeUnbalancedAllocation,
				"fixed-amount policy requires an amount on every rule",
				domainerror.ErrUnbalancedAllocation,
			)
		}
		sum = sum.Add(*rule.FixedAmount)
	}
	if sum.Sub(total).Abs().GreaterThan(money.SplitTolerance) {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeUnbalancedAllocation,
			"fixed amounts must sum to the line item total",
			domainerror.ErrUnbalancedAllocation,
		)
	}

	shares := make([]Share, len(rules))
	for i, rule := range rules {
		shares[i] = Share{MemberID: rule.MemberID, Amount: *rule.FixedAmount}
	}
	return shares, nil
}

// ToAllocations materializes shares as allocation records for a line item.
func ToAllocations(lineItemID uuid.UUID, shares []Share) []*entity.Allocation {
	allocations := make([]*entity.Allocation, len(shares))
	for i, share := range shares {
		allocations[i] = entity.NewAllocation(lineItemID, share.MemberID, share.Percentage, share.Amount)
	}
	return allocations
}
