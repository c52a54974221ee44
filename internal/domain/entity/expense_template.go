// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseScope determines whether an expense is split among all members or
// owed entirely by a single person.
type ExpenseScope string

const (
	ScopeShared   ExpenseScope = "shared"
	ScopePersonal ExpenseScope = "personal"
)

// SplitPolicy determines how a shared expense total is divided among members.
type SplitPolicy string

const (
	PolicyEqual       SplitPolicy = "equal"
	PolicyPercentage  SplitPolicy = "percentage"
	PolicyFixedAmount SplitPolicy = "fixed_amount"
)

// Periodicity determines how often a recurring template generates line items.
type Periodicity string

const (
	PeriodicityMonthly Periodicity = "monthly"
	PeriodicityYearly  Periodicity = "yearly"
	PeriodicityOnce    Periodicity = "once"
)

// ExpenseTemplate is a recurring or one-off expense definition used to
// generate line items for a billing period.
type ExpenseTemplate struct {
	ID            uuid.UUID
	HouseholdID   uuid.UUID
	Name          string
	SubcategoryID uuid.UUID
	Scope         ExpenseScope
	OwnerID       *uuid.UUID // required iff Scope == personal
	Amount        decimal.Decimal
	DueDay        int // day of month the generated line item falls due
	Recurring     bool
	Periodicity   Periodicity
	Policy        SplitPolicy
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewExpenseTemplate creates a new active ExpenseTemplate entity.
// Personal-scope templates always use the equal policy: the owner carries 100%.
func NewExpenseTemplate(
	householdID uuid.UUID,
	name string,
	subcategoryID uuid.UUID,
	scope ExpenseScope,
	ownerID *uuid.UUID,
	amount decimal.Decimal,
	dueDay int,
	recurring bool,
	periodicity Periodicity,
	policy SplitPolicy,
) *ExpenseTemplate {
	if scope == ScopePersonal {
		policy = PolicyEqual
	}
	now := time.Now().UTC()
	return &ExpenseTemplate{
		ID:            uuid.New(),
		HouseholdID:   householdID,
		Name:          name,
		SubcategoryID: subcategoryID,
		Scope:         scope,
		OwnerID:       ownerID,
		Amount:        amount,
		DueDay:        dueDay,
		Recurring:     recurring,
		Periodicity:   periodicity,
		Policy:        policy,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SplitRule is a per-member override for a shared template: a percentage of
// the total or a fixed amount, never both.
type SplitRule struct {
	ID          uuid.UUID
	TemplateID  uuid.UUID
	MemberID    uuid.UUID // user ID of the member
	Percentage  *decimal.Decimal
	FixedAmount *decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSplitRule creates a new SplitRule entity.
func NewSplitRule(templateID, memberID uuid.UUID, percentage, fixedAmount *decimal.Decimal) *SplitRule {
	now := time.Now().UTC()
	return &SplitRule{
		ID:          uuid.New(),
		TemplateID:  templateID,
		MemberID:    memberID,
		Percentage:  percentage,
		FixedAmount: fixedAmount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TemplateWithRules represents a template and its split rules.
type TemplateWithRules struct {
	Template *ExpenseTemplate
	Rules    []*SplitRule
}
